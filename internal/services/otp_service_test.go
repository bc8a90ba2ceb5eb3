package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

func TestGenerateNumericCode(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateNumericCode(length)
		if err != nil {
			t.Fatalf("GenerateNumericCode(%d) failed: %v", length, err)
		}
		if len(code) != length {
			t.Errorf("GenerateNumericCode(%d) = %q, want %d digits", length, code, length)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Errorf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

func TestOTPVerifyConsumesCode(t *testing.T) {
	svc := NewOTPService(newTestDB(t), 5*time.Minute, 6)

	verification, err := svc.Issue("+998901234567", models.PurposeCustomerLogin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := svc.Verify("+998901234567", models.PurposeCustomerLogin, verification.Code); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	err = svc.Verify("+998901234567", models.PurposeCustomerLogin, verification.Code)
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Status != fiber.StatusUnauthorized {
		t.Errorf("replayed code: got %v, want 401", err)
	}
}

func TestOTPVerifyExpiredCode(t *testing.T) {
	svc := NewOTPService(newTestDB(t), -time.Minute, 6)

	verification, err := svc.Issue("+998901234567", models.PurposeMerchantLogin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	err = svc.Verify("+998901234567", models.PurposeMerchantLogin, verification.Code)
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Status != fiber.StatusUnauthorized {
		t.Errorf("expired code: got %v, want 401", err)
	}
}

func TestOTPVerifyWrongCode(t *testing.T) {
	svc := NewOTPService(newTestDB(t), 5*time.Minute, 6)

	if _, err := svc.Issue("+998901234567", models.PurposeCustomerLogin); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	err := svc.Verify("+998901234567", models.PurposeCustomerLogin, "000000x")
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Status != fiber.StatusUnauthorized {
		t.Errorf("wrong code: got %v, want 401", err)
	}
}

func TestOTPIssueInvalidatesPriorCodes(t *testing.T) {
	db := newTestDB(t)
	svc := NewOTPService(db, 5*time.Minute, 6)

	if _, err := svc.Issue("+998901234567", models.PurposeCustomerLogin); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	second, err := svc.Issue("+998901234567", models.PurposeCustomerLogin)
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.VerificationCode{}).
		Where("phone = ? AND purpose = ?", "+998901234567", models.PurposeCustomerLogin).
		Count(&count).Error; err != nil {
		t.Fatalf("counting codes: %v", err)
	}
	if count != 1 {
		t.Errorf("codes on file = %d, want 1", count)
	}

	if err := svc.Verify("+998901234567", models.PurposeCustomerLogin, second.Code); err != nil {
		t.Errorf("latest code should verify, got %v", err)
	}
}

