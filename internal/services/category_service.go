package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// CategoryService provides merchant-scoped category operations. Every
// lookup filters by merchant ID so that cross-tenant access surfaces as
// not-found, never as another merchant's data.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryInput carries writable category fields.
type CategoryInput struct {
	NameAr    string `json:"name_ar"`
	NameEn    string `json:"name_en"`
	IsActive  *bool  `json:"is_active"`
	SortOrder *int   `json:"sort_order"`
}

// ReorderPair assigns a sort order to a category.
type ReorderPair struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sort_order"`
}

// List returns the merchant's categories ordered by sort order.
func (s *CategoryService) List(merchantID uuid.UUID, pg utils.Pagination) ([]models.Category, int64, error) {
	query := s.db.Model(&models.Category{}).Where("merchant_id = ?", merchantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	if err := query.Order("sort_order asc, created_at asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// Get loads one category owned by the merchant.
func (s *CategoryService) Get(id, merchantID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ? AND merchant_id = ?", id, merchantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("category not found")
		}
		return nil, err
	}
	return &category, nil
}

// Create persists a new category for the merchant. When no sort order is
// given the category is appended after the existing ones.
func (s *CategoryService) Create(merchantID uuid.UUID, input CategoryInput) (*models.Category, error) {
	if input.NameAr == "" && input.NameEn == "" {
		return nil, utils.ValidationError(map[string]string{"name_en": "name is required"})
	}

	category := models.Category{
		MerchantID: merchantID,
		NameAr:     input.NameAr,
		NameEn:     input.NameEn,
		IsActive:   true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	} else {
		var max int
		s.db.Model(&models.Category{}).
			Where("merchant_id = ?", merchantID).
			Select("COALESCE(MAX(sort_order), -1)").Scan(&max)
		category.SortOrder = max + 1
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update mutates an existing category owned by the merchant.
func (s *CategoryService) Update(id, merchantID uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id, merchantID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.NameAr != "" {
		updates["name_ar"] = input.NameAr
	}
	if input.NameEn != "" {
		updates["name_en"] = input.NameEn
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return category, nil
}

// Delete removes a category owned by the merchant. Products keep existing
// with a cleared category reference.
func (s *CategoryService) Delete(id, merchantID uuid.UUID) error {
	category, err := s.Get(id, merchantID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ? AND merchant_id = ?", id, merchantID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

// SetActive toggles the active flag.
func (s *CategoryService) SetActive(id, merchantID uuid.UUID, active bool) (*models.Category, error) {
	category, err := s.Get(id, merchantID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(category).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Reorder applies sort orders to the given categories. Every referenced
// category must belong to the merchant, otherwise the whole batch is
// rejected before any write.
func (s *CategoryService) Reorder(merchantID uuid.UUID, pairs []ReorderPair) error {
	if len(pairs) == 0 {
		return utils.ValidationError(map[string]string{"categories": "at least one entry is required"})
	}

	// Duplicate ids in the batch must not skew the ownership count.
	seen := make(map[uuid.UUID]struct{}, len(pairs))
	ids := make([]uuid.UUID, 0, len(pairs))
	for _, pair := range pairs {
		if _, ok := seen[pair.ID]; ok {
			continue
		}
		seen[pair.ID] = struct{}{}
		ids = append(ids, pair.ID)
	}

	var owned int64
	if err := s.db.Model(&models.Category{}).
		Where("merchant_id = ? AND id IN ?", merchantID, ids).
		Count(&owned).Error; err != nil {
		return err
	}
	if owned != int64(len(ids)) {
		return utils.NotFoundError("category not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range pairs {
			if err := tx.Model(&models.Category{}).
				Where("id = ? AND merchant_id = ?", pair.ID, merchantID).
				Update("sort_order", pair.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
