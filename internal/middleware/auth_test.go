package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/config"
	"github.com/example/dasturxon/internal/utils"
)

// The revocation check is skipped with a nil db, so these tests exercise
// the token-parsing and kind-gating paths without a database.
func newAuthApp(t *testing.T, cfg *config.Config, kinds ...string) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Get("/protected", Auth(cfg, nil, kinds...), func(c *fiber.Ctx) error {
		return utils.Success(c, "OK", fiber.Map{"id": CurrentID(c).String()})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authorization string) int {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMissingHeader(t *testing.T) {
	app := newAuthApp(t, &config.Config{JWTSecret: "test-secret"})
	if status := request(t, app, ""); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthBadScheme(t *testing.T) {
	app := newAuthApp(t, &config.Config{JWTSecret: "test-secret"})
	if status := request(t, app, "Basic abc123"); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	app := newAuthApp(t, &config.Config{JWTSecret: "test-secret"})
	if status := request(t, app, "Bearer not-a-token"); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	app := newAuthApp(t, &config.Config{JWTSecret: "test-secret"})

	token, _, err := utils.GenerateToken("other-secret", uuid.New(), utils.KindMerchant, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if status := request(t, app, "Bearer "+token); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestAuthKindMismatch(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newAuthApp(t, cfg, utils.KindMerchant)

	token, _, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), utils.KindCustomer, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if status := request(t, app, "Bearer "+token); status != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestAuthAllowsMatchingKind(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newAuthApp(t, cfg, utils.KindMerchant)

	token, _, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), utils.KindMerchant, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if status := request(t, app, "Bearer "+token); status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func TestAuthAnyKindWhenUnscoped(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newAuthApp(t, cfg)

	token, _, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), utils.KindAdmin, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if status := request(t, app, "Bearer "+token); status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}
