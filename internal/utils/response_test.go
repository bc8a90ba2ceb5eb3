package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func callEnvelope(t *testing.T, handler fiber.Handler) (int, envelope) {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, body
}

func TestErrorHandlerAppError(t *testing.T) {
	status, body := callEnvelope(t, func(c *fiber.Ctx) error {
		return NotFoundError("order not found")
	})

	if status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if body.Success || body.Message != "order not found" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestErrorHandlerValidationFields(t *testing.T) {
	status, body := callEnvelope(t, func(c *fiber.Ctx) error {
		return ValidationError(map[string]string{"reason": "reason is required"})
	})

	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", status)
	}
	if body.Errors["reason"] != "reason is required" {
		t.Errorf("field errors missing: %+v", body)
	}
}

func TestErrorHandlerUnexpectedError(t *testing.T) {
	status, body := callEnvelope(t, func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Message != "internal server error" {
		t.Errorf("internal details should not leak, got %q", body.Message)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, "OK", fiber.Map{"id": "abc"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success || body.Message != "OK" || body.Data["id"] != "abc" {
		t.Errorf("unexpected body: %+v", body)
	}
}
