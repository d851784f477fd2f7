package repository

import (
	"errors"
	"strings"

	"github.com/storefront-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter holds the optional catalog filters; zero values mean "no
// constraint"
type ProductFilter struct {
	Keyword    string
	CategoryID *uint
	PriceGTE   *float64
	PriceLTE   *float64
}

// ProductRepository handles product data access
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetByID retrieves a product by ID with its category joined
func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	result := r.db.Preload("Category").First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

// filterScope applies the catalog filters. List uses the same scope for the
// count and the page slice so the two can never drift apart.
func filterScope(f ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Keyword != "" {
			pattern := "%" + strings.ToLower(f.Keyword) + "%"
			db = db.Joins("LEFT JOIN categories ON categories.id = products.category_id").
				Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
					pattern, pattern, pattern)
		}
		if f.CategoryID != nil {
			db = db.Where("products.category_id = ?", *f.CategoryID)
		}
		if f.PriceGTE != nil {
			db = db.Where("products.price >= ?", *f.PriceGTE)
		}
		if f.PriceLTE != nil {
			db = db.Where("products.price <= ?", *f.PriceLTE)
		}
		return db
	}
}

// List retrieves a page of products matching the filter, newest first,
// together with the total match count
func (r *ProductRepository) List(filter ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := r.db.Model(&models.Product{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Model(&models.Product{}).
		Scopes(filterScope(filter)).
		Preload("Category").
		Order("products.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&products)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return products, total, nil
}

// Latest retrieves the most recently created products
func (r *ProductRepository) Latest(limit int) ([]models.Product, error) {
	var products []models.Product
	result := r.db.Order("created_at DESC").Limit(limit).Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

// Update persists all fields of a product
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete hard-deletes a product
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// Count counts all products
func (r *ProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
