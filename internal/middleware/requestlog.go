package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/dasturxon/internal/utils"
)

// RequestLogger logs every request with method, path, status, latency and
// a request id. The id is taken from X-Request-ID when present.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		// The error handler writes the response after this middleware
		// unwinds, so the status must come from the error itself.
		status := c.Response().StatusCode()
		if err != nil {
			var appErr *utils.AppError
			var fiberErr *fiber.Error
			switch {
			case errors.As(err, &appErr):
				status = appErr.Status
			case errors.As(err, &fiberErr):
				status = fiberErr.Code
			default:
				status = fiber.StatusInternalServerError
			}
		}

		log.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}
