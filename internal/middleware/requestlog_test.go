package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/dasturxon/internal/utils"
)

func loggedStatus(t *testing.T, handler fiber.Handler) int64 {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	resp.Body.Close()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}

	status, ok := entries[0].ContextMap()["status"].(int64)
	if !ok {
		t.Fatalf("status field missing from log entry: %v", entries[0].ContextMap())
	}
	return status
}

func TestRequestLoggerRecordsSuccessStatus(t *testing.T) {
	status := loggedStatus(t, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	if status != fiber.StatusCreated {
		t.Errorf("logged status = %d, want 201", status)
	}
}

func TestRequestLoggerRecordsDomainErrorStatus(t *testing.T) {
	status := loggedStatus(t, func(c *fiber.Ctx) error {
		return utils.ConflictError("cannot transition order from delivered to confirmed")
	})
	if status != fiber.StatusConflict {
		t.Errorf("logged status = %d, want 409", status)
	}
}

func TestRequestLoggerEchoesRequestID(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want %q", got, "req-42")
	}
}
