package models

import "time"

// OTP purposes bind a code to the principal kind that requested it.
const (
	PurposeMerchantLogin = "merchant_login"
	PurposeCustomerLogin = "customer_login"
)

// VerificationCode is a short-lived OTP bound to a phone number and
// purpose. Codes are deleted on successful use; issuing a new code
// invalidates earlier ones for the same phone and purpose.
type VerificationCode struct {
	BaseModel
	Phone     string    `gorm:"index" json:"phone"`
	Purpose   string    `gorm:"index" json:"purpose"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the code is past its expiry at the given time.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// RevokedToken records a logged-out bearer token by its JWT ID. Rows can be
// purged once ExpiresAt passes since the token itself is no longer valid.
type RevokedToken struct {
	BaseModel
	JTI       string    `gorm:"uniqueIndex" json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
}
