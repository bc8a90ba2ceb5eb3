package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderRejected       OrderStatus = "rejected"
	OrderCancelled      OrderStatus = "cancelled"
)

// PaymentStatus enumerates payment states tracked on the order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// orderTransitions defines the forward-only transition graph. Cancel is
// additionally allowed from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderRejected},
	OrderConfirmed:      {OrderPreparing, OrderRejected},
	OrderPreparing:      {OrderReady},
	OrderReady:          {OrderOutForDelivery},
	OrderOutForDelivery: {OrderDelivered},
}

// IsTerminal reports whether no further transition is defined from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderRejected || s == OrderCancelled
}

// CanTransitionTo reports whether moving from s to target is defined.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderCancelled {
		return !s.IsTerminal()
	}
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// StatusTimestampColumn returns the column stamped when an order enters the
// given status, if one exists.
func StatusTimestampColumn(target OrderStatus) (string, bool) {
	switch target {
	case OrderConfirmed:
		return "confirmed_at", true
	case OrderPreparing:
		return "prepared_at", true
	case OrderReady:
		return "ready_at", true
	case OrderOutForDelivery:
		return "out_for_delivery_at", true
	case OrderDelivered:
		return "delivered_at", true
	case OrderRejected:
		return "rejected_at", true
	case OrderCancelled:
		return "cancelled_at", true
	}
	return "", false
}

// Order belongs to one merchant and one customer. OrderNumber is assigned
// once at creation and never changes.
type Order struct {
	BaseModel
	MerchantID uuid.UUID `gorm:"type:uuid;index" json:"merchant_id"`
	Merchant   *Merchant `json:"merchant,omitempty"`
	CustomerID uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`

	OrderNumber string      `gorm:"uniqueIndex" json:"order_number"`
	Status      OrderStatus `gorm:"default:'pending'" json:"status"`
	PlacedAt    time.Time   `json:"placed_at"`

	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	ServiceFee  float64 `json:"service_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`

	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"default:'pending'" json:"payment_status"`

	RejectionReason  string `json:"rejection_reason"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Notes            string `json:"notes"`

	ConfirmedAt      *time.Time `json:"confirmed_at"`
	PreparedAt       *time.Time `json:"prepared_at"`
	ReadyAt          *time.Time `json:"ready_at"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at"`
	DeliveredAt      *time.Time `json:"delivered_at"`
	RejectedAt       *time.Time `json:"rejected_at"`
	CancelledAt      *time.Time `json:"cancelled_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots a product line at order time.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID    *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName  string     `json:"product_name"`
	Quantity     int        `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
	TotalPrice   float64    `json:"total_price"`
	Options      string     `json:"options"`
	Instructions string     `json:"instructions"`
}
