package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// OrderHandler exposes merchant order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns the merchant's orders with filters.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filters := services.OrderFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("search"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filters.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filters.To = &end
		}
	}

	items, total, err := h.orders.List(middleware.CurrentID(c), filters, pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}

// Get returns a single order.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.Get(id, middleware.CurrentID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, "OK", order)
}

type confirmRequest struct {
	EstimatedMinutes int `json:"estimated_minutes"`
}

// Confirm moves a pending order to confirmed, optionally recording an ETA.
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	var req confirmRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	return h.transition(c, models.OrderConfirmed, services.TransitionOptions{
		EstimatedMinutes: req.EstimatedMinutes,
	})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject moves a pending or confirmed order to rejected with a reason.
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return h.transition(c, models.OrderRejected, services.TransitionOptions{
		Reason: req.Reason,
	})
}

// Preparing marks a confirmed order as being prepared.
func (h *OrderHandler) Preparing(c *fiber.Ctx) error {
	return h.transition(c, models.OrderPreparing, services.TransitionOptions{})
}

// Ready marks an order as ready for pickup by the courier.
func (h *OrderHandler) Ready(c *fiber.Ctx) error {
	return h.transition(c, models.OrderReady, services.TransitionOptions{})
}

// OutForDelivery marks an order as handed to the courier.
func (h *OrderHandler) OutForDelivery(c *fiber.Ctx) error {
	return h.transition(c, models.OrderOutForDelivery, services.TransitionOptions{})
}

// Delivered marks an order as delivered.
func (h *OrderHandler) Delivered(c *fiber.Ctx) error {
	return h.transition(c, models.OrderDelivered, services.TransitionOptions{})
}

// Cancel cancels any non-terminal order.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, models.OrderCancelled, services.TransitionOptions{})
}

func (h *OrderHandler) transition(c *fiber.Ctx, target models.OrderStatus, opts services.TransitionOptions) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.Transition(id, middleware.CurrentID(c), target, opts)
	if err != nil {
		return err
	}
	return utils.Success(c, "order "+string(target), order)
}
