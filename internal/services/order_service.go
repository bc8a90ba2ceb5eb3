package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// Marketplace fee schedule applied when a customer places an order.
const (
	taxRate        = 0.12
	serviceFeeRate = 0.02
	deliveryFee    = 5.0
)

// maxRejectionReasonLen bounds the persisted rejection reason.
const maxRejectionReasonLen = 500

// ETA bounds accepted on confirmation, in minutes.
const (
	minEstimatedMinutes = 1
	maxEstimatedMinutes = 300
)

// OrderService owns the order lifecycle: customer placement, merchant
// retrieval and status transitions.
type OrderService struct {
	db       *gorm.DB
	notifier *NotifierService
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB, notifier *NotifierService) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// OrderFilters narrows merchant order listings.
type OrderFilters struct {
	Status        string
	PaymentStatus string
	Search        string
	From          *time.Time
	To            *time.Time
}

// List returns the merchant's orders with filters applied.
func (s *OrderService) List(merchantID uuid.UUID, filters OrderFilters, pg utils.Pagination) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("merchant_id = ?", merchantID)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}
	if filters.Search != "" {
		q := "%" + filters.Search + "%"
		query = query.Where("order_number ILIKE ?", q)
	}
	if filters.From != nil {
		query = query.Where("placed_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("placed_at <= ?", *filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Customer").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Get loads one order owned by the merchant. Orders of other merchants
// surface as not-found.
func (s *OrderService) Get(id, merchantID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Customer").
		First(&order, "id = ? AND merchant_id = ?", id, merchantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("order not found")
		}
		return nil, err
	}
	return &order, nil
}

// TransitionOptions carries per-transition parameters.
type TransitionOptions struct {
	// Reason is required when rejecting.
	Reason string
	// EstimatedMinutes optionally sets the displayed ETA on confirmation.
	EstimatedMinutes int
}

// ValidateTransitionOptions checks the option fields for a target status.
// Returns field-level messages, empty when valid.
func ValidateTransitionOptions(target models.OrderStatus, opts TransitionOptions) map[string]string {
	fields := map[string]string{}

	if target == models.OrderRejected {
		if opts.Reason == "" {
			fields["reason"] = "reason is required when rejecting an order"
		} else if len(opts.Reason) > maxRejectionReasonLen {
			fields["reason"] = fmt.Sprintf("reason must be at most %d characters", maxRejectionReasonLen)
		}
	}

	if target == models.OrderConfirmed && opts.EstimatedMinutes != 0 {
		if opts.EstimatedMinutes < minEstimatedMinutes || opts.EstimatedMinutes > maxEstimatedMinutes {
			fields["estimated_minutes"] = fmt.Sprintf("estimated minutes must be between %d and %d",
				minEstimatedMinutes, maxEstimatedMinutes)
		}
	}

	return fields
}

// Transition moves an order owned by the merchant to the target status.
// The row is locked for the duration of the transaction so concurrent
// transition requests on the same order serialize; the losing request sees
// the updated status and fails the graph check. An undefined transition
// leaves the order untouched and returns a conflict naming both statuses.
func (s *OrderService) Transition(id, merchantID uuid.UUID, target models.OrderStatus, opts TransitionOptions) (*models.Order, error) {
	if fields := ValidateTransitionOptions(target, opts); len(fields) > 0 {
		return nil, utils.ValidationError(fields)
	}

	var from models.OrderStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ? AND merchant_id = ?", id, merchantID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFoundError("order not found")
			}
			return err
		}

		from = order.Status
		if !order.Status.CanTransitionTo(target) {
			return utils.ConflictError(fmt.Sprintf(
				"cannot transition order from %s to %s", order.Status, target))
		}

		now := time.Now()
		updates := map[string]interface{}{"status": target}
		if column, ok := models.StatusTimestampColumn(target); ok {
			updates[column] = now
		}
		if target == models.OrderRejected {
			updates["rejection_reason"] = opts.Reason
		}
		if target == models.OrderConfirmed && opts.EstimatedMinutes > 0 {
			updates["estimated_minutes"] = opts.EstimatedMinutes
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		if target == models.OrderDelivered {
			if err := tx.Model(&models.Customer{}).
				Where("id = ?", order.CustomerID).
				Updates(map[string]interface{}{
					"total_spent":    gorm.Expr("total_spent + ?", order.Total),
					"loyalty_points": gorm.Expr("loyalty_points + ?", int(order.Total/10)),
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Get(id, merchantID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.NotifyStatusChange(order, from)
	}

	return order, nil
}

// OrderItemInput is one line of a placement request.
type OrderItemInput struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Options      string `json:"options"`
	Instructions string `json:"instructions"`
}

// PlaceOrderInput carries a customer's order request.
type PlaceOrderInput struct {
	MerchantID    string           `json:"merchant_id"`
	PaymentMethod string           `json:"payment_method"`
	Items         []OrderItemInput `json:"items"`
	Notes         string           `json:"notes"`
}

// Place creates a pending order for the customer. Prices and names are
// snapshotted from the catalog and tracked stock is decremented inside the
// same transaction, so an unavailable line aborts the whole order.
func (s *OrderService) Place(customerID uuid.UUID, input PlaceOrderInput) (*models.Order, error) {
	fields := map[string]string{}
	if input.MerchantID == "" {
		fields["merchant_id"] = "merchant is required"
	}
	if len(input.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			fields["items"] = "item quantity must be positive"
		}
	}
	if len(fields) > 0 {
		return nil, utils.ValidationError(fields)
	}

	merchantID, err := uuid.Parse(input.MerchantID)
	if err != nil {
		return nil, utils.ValidationError(map[string]string{"merchant_id": "invalid merchant id"})
	}

	var merchant models.Merchant
	if err := s.db.First(&merchant, "id = ?", merchantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("merchant not found")
		}
		return nil, err
	}
	if !merchant.IsApproved || merchant.IsSuspended {
		return nil, utils.NotFoundError("merchant not found")
	}

	order := models.Order{
		MerchantID:    merchantID,
		CustomerID:    customerID,
		OrderNumber:   generateOrderNumber(),
		Status:        models.OrderPending,
		PlacedAt:      time.Now(),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Notes:         input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64

		for _, line := range input.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return utils.ValidationError(map[string]string{"items": "invalid product id"})
			}

			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ? AND merchant_id = ?", productID, merchantID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return utils.NotFoundError("product not found")
				}
				return err
			}

			if product.IsOutOfStock() {
				return utils.ConflictError(fmt.Sprintf("product %s is out of stock", product.NameEn))
			}
			if product.TrackStock {
				if product.StockQuantity < line.Quantity {
					return utils.ConflictError(fmt.Sprintf("insufficient stock for %s", product.NameEn))
				}
				if err := tx.Model(&product).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
					return err
				}
			}

			unitPrice := product.EffectivePrice()
			name := product.NameEn
			if name == "" {
				name = product.NameAr
			}

			item := models.OrderItem{
				ProductID:    &product.ID,
				ProductName:  name,
				Quantity:     line.Quantity,
				UnitPrice:    unitPrice,
				TotalPrice:   unitPrice * float64(line.Quantity),
				Options:      line.Options,
				Instructions: line.Instructions,
			}
			subtotal += item.TotalPrice
			order.Items = append(order.Items, item)
		}

		order.Subtotal = subtotal
		order.Tax = round2(subtotal * taxRate)
		order.ServiceFee = round2(subtotal * serviceFeeRate)
		order.DeliveryFee = deliveryFee
		order.Total = round2(order.Subtotal + order.Tax + order.ServiceFee + order.DeliveryFee - order.Discount)

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		merchantName := merchant.NameEn
		if merchantName == "" {
			merchantName = merchant.NameAr
		}
		var customer models.Customer
		phone := ""
		if err := s.db.First(&customer, "id = ?", customerID).Error; err == nil {
			phone = customer.Phone
		}
		go s.notifier.NotifyOrderPlaced(&order, merchantName, phone)
	}

	return &order, nil
}

// ListForCustomer returns the customer's own orders.
func (s *OrderService) ListForCustomer(customerID uuid.UUID, status string, pg utils.Pagination) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("customer_id = ?", customerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetForCustomer loads one order owned by the customer.
func (s *OrderService) GetForCustomer(id, customerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		First(&order, "id = ? AND customer_id = ?", id, customerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("order not found")
		}
		return nil, err
	}
	return &order, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("DT-%d", time.Now().UnixNano()%1_000_000_000_000)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
