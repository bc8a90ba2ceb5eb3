package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AppError is a domain error carrying an HTTP status, a human-readable
// message and optional field-level validation messages.
type AppError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *AppError) Error() string {
	return e.Message
}

// NotFoundError hides both missing rows and cross-tenant access behind the
// same response.
func NotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

// ConflictError signals an invalid state transition or duplicate resource.
func ConflictError(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// ValidationError carries field-level messages.
func ValidationError(fields map[string]string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnprocessableEntity,
		Message: "validation failed",
		Fields:  fields,
	}
}

// UnauthorizedError signals a missing or invalid credential.
func UnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// ForbiddenError signals a wrong principal kind or a protected-entity
// violation.
func ForbiddenError(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

// Success writes the uniform envelope with a 200 status.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Created writes the uniform envelope with a 201 status.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Paginated writes a list response with the standard pagination block.
func Paginated(c *fiber.Ctx, items interface{}, pg Pagination, total int64) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OK",
		"data": fiber.Map{
			"items":      items,
			"pagination": pg.Meta(total),
		},
	})
}

// ErrorHandler maps errors surfacing from handlers to the uniform
// envelope. Unexpected errors are logged and wrapped as a bare 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{
			"success": false,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		return c.Status(appErr.Status).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}
