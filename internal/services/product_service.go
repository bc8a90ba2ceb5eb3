package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dasturxon/internal/models"
	"github.com/example/dasturxon/internal/utils"
)

// ProductService provides merchant-scoped product operations.
type ProductService struct {
	db *gorm.DB
}

// NewProductService constructs a ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ProductInput carries writable product fields.
type ProductInput struct {
	CategoryID        string   `json:"category_id"`
	NameAr            string   `json:"name_ar"`
	NameEn            string   `json:"name_en"`
	DescriptionAr     string   `json:"description_ar"`
	DescriptionEn     string   `json:"description_en"`
	Price             *float64 `json:"price"`
	DiscountPrice     *float64 `json:"discount_price"`
	IsAvailable       *bool    `json:"is_available"`
	TrackStock        *bool    `json:"track_stock"`
	StockQuantity     *int     `json:"stock_quantity"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	IsFeatured        *bool    `json:"is_featured"`
	IsPopular         *bool    `json:"is_popular"`
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	CategoryID  string
	Search      string
	IsAvailable *bool
	IsFeatured  *bool
}

// List returns the merchant's products with optional filters.
func (s *ProductService) List(merchantID uuid.UUID, filters ProductFilters, pg utils.Pagination) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("merchant_id = ?", merchantID)

	if filters.CategoryID != "" {
		if id, err := uuid.Parse(filters.CategoryID); err == nil {
			query = query.Where("category_id = ?", id)
		}
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		q := "%" + search + "%"
		query = query.Where("name_ar ILIKE ? OR name_en ILIKE ?", q, q)
	}
	if filters.IsAvailable != nil {
		query = query.Where("is_available = ?", *filters.IsAvailable)
	}
	if filters.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filters.IsFeatured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Get loads one product owned by the merchant.
func (s *ProductService) Get(id, merchantID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").
		First(&product, "id = ? AND merchant_id = ?", id, merchantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("product not found")
		}
		return nil, err
	}
	return &product, nil
}

// Create persists a new product for the merchant.
func (s *ProductService) Create(merchantID uuid.UUID, input ProductInput) (*models.Product, error) {
	fields := map[string]string{}
	if input.NameAr == "" && input.NameEn == "" {
		fields["name_en"] = "name is required"
	}
	if input.Price == nil || *input.Price < 0 {
		fields["price"] = "price must be a non-negative number"
	}
	if len(fields) > 0 {
		return nil, utils.ValidationError(fields)
	}

	product := models.Product{
		MerchantID:    merchantID,
		NameAr:        input.NameAr,
		NameEn:        input.NameEn,
		DescriptionAr: input.DescriptionAr,
		DescriptionEn: input.DescriptionEn,
		Price:         *input.Price,
		IsAvailable:   true,
	}

	if input.CategoryID != "" {
		id, err := uuid.Parse(input.CategoryID)
		if err != nil {
			return nil, utils.ValidationError(map[string]string{"category_id": "invalid category id"})
		}
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND merchant_id = ?", id, merchantID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, utils.NotFoundError("category not found")
		}
		product.CategoryID = &id
	}

	if input.DiscountPrice != nil {
		product.DiscountPrice = *input.DiscountPrice
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.TrackStock != nil {
		product.TrackStock = *input.TrackStock
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsPopular != nil {
		product.IsPopular = *input.IsPopular
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update mutates an existing product owned by the merchant.
func (s *ProductService) Update(id, merchantID uuid.UUID, input ProductInput) (*models.Product, error) {
	product, err := s.Get(id, merchantID)
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
	if input.DescriptionAr != "" {
		updates["description_ar"] = input.DescriptionAr
	}
	if input.DescriptionEn != "" {
		updates["description_en"] = input.DescriptionEn
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, utils.ValidationError(map[string]string{"price": "price must be a non-negative number"})
		}
		updates["price"] = *input.Price
	}
	if input.DiscountPrice != nil {
		updates["discount_price"] = *input.DiscountPrice
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if input.TrackStock != nil {
		updates["track_stock"] = *input.TrackStock
	}
	if input.StockQuantity != nil {
		updates["stock_quantity"] = *input.StockQuantity
	}
	if input.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *input.LowStockThreshold
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if input.IsPopular != nil {
		updates["is_popular"] = *input.IsPopular
	}

	if input.CategoryID != "" {
		catID, err := uuid.Parse(input.CategoryID)
		if err != nil {
			return nil, utils.ValidationError(map[string]string{"category_id": "invalid category id"})
		}
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND merchant_id = ?", catID, merchantID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, utils.NotFoundError("category not found")
		}
		updates["category_id"] = catID
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Delete removes a product owned by the merchant.
func (s *ProductService) Delete(id, merchantID uuid.UUID) error {
	product, err := s.Get(id, merchantID)
	if err != nil {
		return err
	}
	return s.db.Delete(product).Error
}

// SetAvailability toggles the availability flag.
func (s *ProductService) SetAvailability(id, merchantID uuid.UUID, available bool) (*models.Product, error) {
	product, err := s.Get(id, merchantID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(product).Update("is_available", available).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStock sets stock tracking fields on a product.
func (s *ProductService) UpdateStock(id, merchantID uuid.UUID, quantity int, threshold *int) (*models.Product, error) {
	if quantity < 0 {
		return nil, utils.ValidationError(map[string]string{"stock_quantity": "quantity must be non-negative"})
	}

	product, err := s.Get(id, merchantID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"track_stock":    true,
		"stock_quantity": quantity,
	}
	if threshold != nil {
		updates["low_stock_threshold"] = *threshold
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// LowStock lists tracked products with 0 < quantity <= threshold.
func (s *ProductService) LowStock(merchantID uuid.UUID, pg utils.Pagination) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("merchant_id = ? AND track_stock = ? AND stock_quantity > 0 AND stock_quantity <= low_stock_threshold",
			merchantID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Order("stock_quantity asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// OutOfStock lists products that cannot be ordered: tracked quantity of
// zero or availability switched off.
func (s *ProductService) OutOfStock(merchantID uuid.UUID, pg utils.Pagination) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("merchant_id = ?", merchantID).
		Where("(track_stock = ? AND stock_quantity = 0) OR is_available = ?", true, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Order("updated_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
