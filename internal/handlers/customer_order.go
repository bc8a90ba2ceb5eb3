package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// CustomerOrderHandler exposes the customer side of ordering.
type CustomerOrderHandler struct {
	orders *services.OrderService
}

// NewCustomerOrderHandler constructs CustomerOrderHandler.
func NewCustomerOrderHandler(orders *services.OrderService) *CustomerOrderHandler {
	return &CustomerOrderHandler{orders: orders}
}

// Place creates a pending order against a merchant.
func (h *CustomerOrderHandler) Place(c *fiber.Ctx) error {
	var input services.PlaceOrderInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.Place(middleware.CurrentID(c), input)
	if err != nil {
		return err
	}
	return utils.Created(c, "order placed", order)
}

// List returns the customer's own orders.
func (h *CustomerOrderHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	items, total, err := h.orders.ListForCustomer(middleware.CurrentID(c), c.Query("status"), pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}

// Get returns one of the customer's own orders.
func (h *CustomerOrderHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.GetForCustomer(id, middleware.CurrentID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, "OK", order)
}
