package models

import "github.com/google/uuid"

// Product is a merchant-scoped catalog item. StockQuantity is only
// meaningful while TrackStock is true.
type Product struct {
	BaseModel
	MerchantID        uuid.UUID  `gorm:"type:uuid;index" json:"merchant_id"`
	CategoryID        *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category          *Category  `json:"category,omitempty"`
	NameAr            string     `json:"name_ar"`
	NameEn            string     `json:"name_en"`
	DescriptionAr     string     `json:"description_ar"`
	DescriptionEn     string     `json:"description_en"`
	Price             float64    `json:"price"`
	DiscountPrice     float64    `json:"discount_price"`
	IsAvailable       bool       `gorm:"default:true" json:"is_available"`
	TrackStock        bool       `json:"track_stock"`
	StockQuantity     int        `json:"stock_quantity"`
	LowStockThreshold int        `gorm:"default:5" json:"low_stock_threshold"`
	IsFeatured        bool       `json:"is_featured"`
	IsPopular         bool       `json:"is_popular"`
}

// IsLowStock reports whether the tracked quantity is above zero but at or
// below the threshold.
func (p *Product) IsLowStock() bool {
	return p.TrackStock && p.StockQuantity > 0 && p.StockQuantity <= p.LowStockThreshold
}

// IsOutOfStock reports whether the product cannot be ordered.
func (p *Product) IsOutOfStock() bool {
	if !p.IsAvailable {
		return true
	}
	return p.TrackStock && p.StockQuantity == 0
}

// EffectivePrice returns the discounted price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}
