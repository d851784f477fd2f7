package repository

import (
	"errors"

	"github.com/storefront-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	err := r.db.Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCategory
	}
	return err
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	result := r.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// List retrieves all categories in creation order
func (r *CategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	result := r.db.Order("created_at ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// Update persists all fields of a category
func (r *CategoryRepository) Update(category *models.Category) error {
	err := r.db.Save(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCategory
	}
	return err
}

// DeleteWithProducts deletes a category and every product referencing it in
// one transaction: readers never observe the category gone while its
// products remain. The removed products are returned so callers can clean up
// their image blobs after commit.
func (r *CategoryRepository) DeleteWithProducts(id uint) ([]models.Product, error) {
	var orphaned []models.Product

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Where("category_id = ?", id).Find(&orphaned).Error; err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		return nil, err
	}

	return orphaned, nil
}

// Count counts all categories
func (r *CategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	return count, err
}
