package models

// CustomerStatus enumerates customer account states.
type CustomerStatus string

const (
	CustomerPending   CustomerStatus = "pending"
	CustomerActive    CustomerStatus = "active"
	CustomerInactive  CustomerStatus = "inactive"
	CustomerSuspended CustomerStatus = "suspended"
	CustomerBanned    CustomerStatus = "banned"
)

// Tier classifies a customer by cumulative spend.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Customer represents a principal that places orders against merchants.
type Customer struct {
	BaseModel
	Phone         string         `gorm:"uniqueIndex" json:"phone"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	IsVerified    bool           `json:"is_verified"`
	Status        CustomerStatus `gorm:"default:'pending'" json:"status"`
	LoyaltyPoints int            `json:"loyalty_points"`
	TotalSpent    float64        `json:"total_spent"`

	Orders []Order `json:"orders,omitempty"`
}

// Tier derives the customer classification from cumulative spend.
func (c *Customer) Tier() Tier {
	return TierForSpend(c.TotalSpent)
}

// TierForSpend maps a cumulative spend amount to a tier.
func TierForSpend(total float64) Tier {
	switch {
	case total >= 5000:
		return TierPlatinum
	case total >= 1500:
		return TierGold
	case total >= 500:
		return TierSilver
	default:
		return TierBronze
	}
}
