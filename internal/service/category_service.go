package service

import (
	"errors"
	"strings"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
)

// CategoryService handles category lifecycle operations
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	products     *ProductService
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo *repository.CategoryRepository, products *ProductService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		products:     products,
	}
}

// List retrieves all categories
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Create creates a category with a trimmed, non-empty, unique name
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category
func (s *CategoryService) Update(id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category together with every product referencing it.
// Rows go atomically; image blobs of the removed products are cleaned up
// best-effort after the transaction commits.
func (s *CategoryService) Delete(id uint) error {
	orphaned, err := s.categoryRepo.DeleteWithProducts(id)
	if err != nil {
		return err
	}

	s.products.RemoveBlobs(orphaned)
	return nil
}
