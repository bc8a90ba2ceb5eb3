package services

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// OTPService issues and verifies one-time login codes. A code is bound to
// a phone number and purpose, expires after a short TTL and can be used
// exactly once. Issuing a new code invalidates earlier ones for the same
// phone and purpose.
type OTPService struct {
	db     *gorm.DB
	ttl    time.Duration
	length int
}

// NewOTPService constructs an OTPService.
func NewOTPService(db *gorm.DB, ttl time.Duration, length int) *OTPService {
	if length <= 0 {
		length = 6
	}
	return &OTPService{db: db, ttl: ttl, length: length}
}

// Issue deletes earlier codes for the phone and purpose and stores a
// fresh one.
func (s *OTPService) Issue(phone, purpose string) (*models.VerificationCode, error) {
	code, err := GenerateNumericCode(s.length)
	if err != nil {
		return nil, err
	}

	verification := models.VerificationCode{
		Phone:     phone,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ? AND purpose = ?", phone, purpose).
			Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&verification).Error
	})
	if err != nil {
		return nil, err
	}

	return &verification, nil
}

// Verify checks the submitted code and consumes it on success.
func (s *OTPService) Verify(phone, purpose, code string) error {
	var verification models.VerificationCode
	err := s.db.Where("phone = ? AND purpose = ?", phone, purpose).
		Order("created_at desc").
		First(&verification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.UnauthorizedError("invalid verification code")
		}
		return err
	}

	if verification.Code != code {
		return utils.UnauthorizedError("invalid verification code")
	}

	if verification.Expired(time.Now()) {
		return utils.UnauthorizedError("verification code expired")
	}

	return s.db.Delete(&verification).Error
}

// GenerateNumericCode returns a zero-padded random numeric string.
func GenerateNumericCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	code := n.String()
	if len(code) < length {
		code = strings.Repeat("0", length-len(code)) + code
	}
	return code, nil
}
