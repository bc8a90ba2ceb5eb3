package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/middleware"
	"github.com/example/dasturxon/internal/services"
	"github.com/example/dasturxon/internal/utils"
)

// CategoryHandler exposes merchant category endpoints.
type CategoryHandler struct {
	categories *services.CategoryService
}

// NewCategoryHandler constructs CategoryHandler.
func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns the merchant's categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	items, total, err := h.categories.List(middleware.CurrentID(c), pg)
	if err != nil {
		return err
	}
	return utils.Paginated(c, items, pg, total)
}

// Get returns a single category.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	category, err := h.categories.Get(id, middleware.CurrentID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, "OK", category)
}

// Create persists a new category.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.categories.Create(middleware.CurrentID(c), input)
	if err != nil {
		return err
	}
	return utils.Created(c, "category created", category)
}

// Update mutates an existing category.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.categories.Update(id, middleware.CurrentID(c), input)
	if err != nil {
		return err
	}
	return utils.Success(c, "category updated", category)
}

// Delete removes a category.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.categories.Delete(id, middleware.CurrentID(c)); err != nil {
		return err
	}
	return utils.Success(c, "category deleted", nil)
}

type statusRequest struct {
	IsActive *bool `json:"is_active"`
}

// SetStatus toggles the active flag.
func (h *CategoryHandler) SetStatus(c *fiber.Ctx) error {
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

	category, err := h.categories.SetActive(id, middleware.CurrentID(c), *req.IsActive)
	if err != nil {
		return err
	}
	return utils.Success(c, "category status updated", category)
}

type reorderRequest struct {
	Categories []services.ReorderPair `json:"categories"`
}

// Reorder applies a batch of sort orders.
func (h *CategoryHandler) Reorder(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.categories.Reorder(middleware.CurrentID(c), req.Categories); err != nil {
		return err
	}
	return utils.Success(c, "categories reordered", nil)
}
