package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// ProductHandler exposes merchant product endpoints.
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the merchant's products with optional filters.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filters := services.ProductFilters{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
	}
	if v := c.Query("is_available"); v != "" {
		available := v == "true"
		filters.IsAvailable = &available
	}
	if v := c.Query("is_featured"); v != "" {
		featured := v == "true"
		filters.IsFeatured = &featured
	}

	items, total, err := h.products.List(middleware.CurrentID(c), filters, pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}

// Get returns a single product.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.Get(id, middleware.CurrentID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, "OK", product)
}

// Create persists a new product.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.products.Create(middleware.CurrentID(c), input)
	if err != nil {
		return err
	}
	return utils.Created(c, "product created", product)
}

// Update mutates an existing product.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.products.Update(id, middleware.CurrentID(c), input)
	if err != nil {
		return err
	}
	return utils.Success(c, "product updated", product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.products.Delete(id, middleware.CurrentID(c)); err != nil {
		return err
	}
	return utils.Success(c, "product deleted", nil)
}

// SetStatus toggles product availability.
func (h *ProductHandler) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.IsActive == nil {
		return utils.ValidationError(map[string]string{"is_active": "is_active is required"})
	}

	product, err := h.products.SetAvailability(id, middleware.CurrentID(c), *req.IsActive)
	if err != nil {
		return err
	}
	return utils.Success(c, "product status updated", product)
}

type stockRequest struct {
	StockQuantity     *int `json:"stock_quantity"`
	LowStockThreshold *int `json:"low_stock_threshold"`
}

// SetStock updates tracked stock fields.
func (h *ProductHandler) SetStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.StockQuantity == nil {
		return utils.ValidationError(map[string]string{"stock_quantity": "stock_quantity is required"})
	}

	product, err := h.products.UpdateStock(id, middleware.CurrentID(c), *req.StockQuantity, req.LowStockThreshold)
	if err != nil {
		return err
	}
	return utils.Success(c, "product stock updated", product)
}

// LowStock lists products at or below their threshold.
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	items, total, err := h.products.LowStock(middleware.CurrentID(c), pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}

// OutOfStock lists products that cannot be ordered.
func (h *ProductHandler) OutOfStock(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	items, total, err := h.products.OutOfStock(middleware.CurrentID(c), pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}
