package services

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

func mustCreateCategory(t *testing.T, svc *CategoryService, merchantID uuid.UUID, name string) *models.Category {
	t.Helper()

	category, err := svc.Create(merchantID, CategoryInput{NameEn: name})
	if err != nil {
		t.Fatalf("creating category %q: %v", name, err)
	}
	return category
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()

	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Status != fiber.StatusNotFound {
		t.Fatalf("got %v, want a 404", err)
	}
}

func TestCategoryGetCrossTenant(t *testing.T) {
	svc := NewCategoryService(newTestDB(t))

	owner := uuid.New()
	category := mustCreateCategory(t, svc, owner, "Drinks")

	if _, err := svc.Get(category.ID, owner); err != nil {
		t.Fatalf("owner Get failed: %v", err)
	}

	_, err := svc.Get(category.ID, uuid.New())
	assertNotFound(t, err)
}

func TestCategoryReorderCrossTenant(t *testing.T) {
	svc := NewCategoryService(newTestDB(t))

	owner := uuid.New()
	category := mustCreateCategory(t, svc, owner, "Drinks")

	err := svc.Reorder(uuid.New(), []ReorderPair{{ID: category.ID, SortOrder: 0}})
	assertNotFound(t, err)
}

func TestCategoryReorderDuplicateIDs(t *testing.T) {
	svc := NewCategoryService(newTestDB(t))

	owner := uuid.New()
	first := mustCreateCategory(t, svc, owner, "Drinks")
	second := mustCreateCategory(t, svc, owner, "Desserts")

	pairs := []ReorderPair{
		{ID: first.ID, SortOrder: 5},
		{ID: first.ID, SortOrder: 5},
		{ID: second.ID, SortOrder: 2},
	}
	if err := svc.Reorder(owner, pairs); err != nil {
		t.Fatalf("reorder with repeated id failed: %v", err)
	}

	got, err := svc.Get(first.ID, owner)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SortOrder != 5 {
		t.Errorf("sort_order = %d, want 5", got.SortOrder)
	}

	got, err = svc.Get(second.ID, owner)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SortOrder != 2 {
		t.Errorf("sort_order = %d, want 2", got.SortOrder)
	}
}

func TestCategoryDeleteDetachesProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	owner := uuid.New()
	category := mustCreateCategory(t, svc, owner, "Drinks")

	product := models.Product{
		MerchantID:  owner,
		CategoryID:  &category.ID,
		NameEn:      "Lemonade",
		Price:       3,
		IsAvailable: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("creating product: %v", err)
	}

	if err := svc.Delete(category.ID, owner); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("product should survive category deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("category_id should be cleared, got %v", got.CategoryID)
	}
}
