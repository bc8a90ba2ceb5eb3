package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/config"
	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	otp *services.OTPService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, otp *services.OTPService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, otp: otp}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendMerchantOTP issues a login code for an existing merchant.
func (h *AuthHandler) SendMerchantOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" {
		return utils.ValidationError(map[string]string{"phone": "phone is required"})
	}

	var merchant models.Merchant
	if err := h.db.Where("phone = ?", req.Phone).First(&merchant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("merchant not found")
		}
		return err
	}
	if merchant.IsSuspended {
		return utils.ForbiddenError("merchant account is suspended")
	}

	verification, err := h.otp.Issue(req.Phone, models.PurposeMerchantLogin)
	if err != nil {
		return err
	}

	return utils.Success(c, "verification code sent", h.otpPayload(verification))
}

// SendCustomerOTP issues a login code, registering the customer on first
// contact.
func (h *AuthHandler) SendCustomerOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" {
		return utils.ValidationError(map[string]string{"phone": "phone is required"})
	}

	var customer models.Customer
	err := h.db.Where("phone = ?", req.Phone).First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		customer = models.Customer{Phone: req.Phone, Status: models.CustomerPending}
		if err := h.db.Create(&customer).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if customer.Status == models.CustomerBanned || customer.Status == models.CustomerSuspended {
		return utils.ForbiddenError("customer account is not allowed to sign in")
	}

	verification, err := h.otp.Issue(req.Phone, models.PurposeCustomerLogin)
	if err != nil {
		return err
	}

	return utils.Success(c, "verification code sent", h.otpPayload(verification))
}

// otpPayload hides the code outside development environments.
func (h *AuthHandler) otpPayload(v *models.VerificationCode) fiber.Map {
	payload := fiber.Map{"expires_at": v.ExpiresAt}
	if h.cfg.Environment != "production" {
		payload["debug_code"] = v.Code
	}
	return payload
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (r verifyOTPRequest) validate() map[string]string {
	fields := map[string]string{}
	if r.Phone == "" {
		fields["phone"] = "phone is required"
	}
	if r.Code == "" {
		fields["code"] = "code is required"
	}
	return fields
}

// VerifyMerchantOTP exchanges a valid code for a merchant bearer token.
func (h *AuthHandler) VerifyMerchantOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if fields := req.validate(); len(fields) > 0 {
		return utils.ValidationError(fields)
	}

	if err := h.otp.Verify(req.Phone, models.PurposeMerchantLogin, req.Code); err != nil {
		return err
	}

	var merchant models.Merchant
	if err := h.db.Where("phone = ?", req.Phone).First(&merchant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("merchant not found")
		}
		return err
	}

	if !merchant.IsVerified {
		if err := h.db.Model(&merchant).Update("is_verified", true).Error; err != nil {
			return err
		}
	}

	token, _, err := utils.GenerateToken(h.cfg.JWTSecret, merchant.ID, utils.KindMerchant, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return utils.Success(c, "login successful", fiber.Map{
		"token":    token,
		"merchant": merchant,
	})
}

// VerifyCustomerOTP exchanges a valid code for a customer bearer token and
// activates pending accounts.
func (h *AuthHandler) VerifyCustomerOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if fields := req.validate(); len(fields) > 0 {
		return utils.ValidationError(fields)
	}

	if err := h.otp.Verify(req.Phone, models.PurposeCustomerLogin, req.Code); err != nil {
		return err
	}

	var customer models.Customer
	if err := h.db.Where("phone = ?", req.Phone).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("customer not found")
		}
		return err
	}

	updates := map[string]interface{}{"is_verified": true}
	if customer.Status == models.CustomerPending {
		updates["status"] = models.CustomerActive
	}
	if err := h.db.Model(&customer).Updates(updates).Error; err != nil {
		return err
	}

	token, _, err := utils.GenerateToken(h.cfg.JWTSecret, customer.ID, utils.KindCustomer, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return utils.Success(c, "login successful", fiber.Map{
		"token":    token,
		"customer": customer,
	})
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin authenticates a panel operator with email and password.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return utils.ValidationError(map[string]string{"email": "email and password are required"})
	}

	var admin models.Admin
	if err := h.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.UnauthorizedError("invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return utils.UnauthorizedError("invalid credentials")
	}
	if !admin.IsActive {
		return utils.ForbiddenError("admin account is inactive")
	}

	token, _, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, utils.KindAdmin, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return utils.Success(c, "login successful", fiber.Map{
		"token": token,
		"admin": admin,
	})
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	info, ok := middleware.GetPrincipal(c)
	if !ok {
		return utils.UnauthorizedError("unauthorized")
	}

	switch info.Kind {
	case utils.KindMerchant:
		var merchant models.Merchant
		if err := h.db.First(&merchant, "id = ?", info.PrincipalID).Error; err != nil {
			return utils.UnauthorizedError("merchant not found")
		}
		return utils.Success(c, "OK", fiber.Map{"kind": info.Kind, "merchant": merchant})
	case utils.KindCustomer:
		var customer models.Customer
		if err := h.db.First(&customer, "id = ?", info.PrincipalID).Error; err != nil {
			return utils.UnauthorizedError("customer not found")
		}
		return utils.Success(c, "OK", fiber.Map{
			"kind":     info.Kind,
			"customer": customer,
			"tier":     customer.Tier(),
		})
	case utils.KindAdmin:
		var admin models.Admin
		if err := h.db.Preload("Roles.Permissions").
			First(&admin, "id = ?", info.PrincipalID).Error; err != nil {
			return utils.UnauthorizedError("admin not found")
		}
		return utils.Success(c, "OK", fiber.Map{"kind": info.Kind, "admin": admin})
	}

	return utils.UnauthorizedError("unknown principal kind")
}

// Logout revokes the presented bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	info, ok := middleware.GetPrincipal(c)
	if !ok {
		return utils.UnauthorizedError("unauthorized")
	}

	revoked := models.RevokedToken{
		JTI:       info.JTI,
		ExpiresAt: info.ExpiresAt,
	}
	if err := h.db.Create(&revoked).Error; err != nil {
		return err
	}

	return utils.Success(c, "logged out", nil)
}
