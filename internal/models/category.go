package models

import "github.com/google/uuid"

// Category is a merchant-scoped product grouping.
type Category struct {
	BaseModel
	MerchantID uuid.UUID `gorm:"type:uuid;index" json:"merchant_id"`
	NameAr     string    `json:"name_ar"`
	NameEn     string    `json:"name_en"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	SortOrder  int       `json:"sort_order"`

	Products []Product `json:"products,omitempty"`
}
