package models

// Merchant represents a restaurant business that owns categories, products
// and receives orders. All catalog and order rows are scoped by MerchantID.
type Merchant struct {
	BaseModel
	Phone            string `gorm:"uniqueIndex" json:"phone"`
	NameAr           string `json:"name_ar"`
	NameEn           string `json:"name_en"`
	BusinessType     string `json:"business_type"`
	AddressAr        string `json:"address_ar"`
	AddressEn        string `json:"address_en"`
	IsVerified       bool   `json:"is_verified"`
	IsApproved       bool   `json:"is_approved"`
	IsSuspended      bool   `json:"is_suspended"`
	SubscriptionPlan string `json:"subscription_plan"`
	RegistrationStep int    `json:"registration_step"`

	Categories []Category `json:"categories,omitempty"`
	Products   []Product  `json:"products,omitempty"`
	Orders     []Order    `json:"orders,omitempty"`
}
