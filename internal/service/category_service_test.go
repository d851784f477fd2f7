package service_test

import (
	"testing"
	"time"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryFixture(t *testing.T) (*service.CategoryService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	productService := service.NewProductService(repository.NewProductRepository(db), newTestStore(t))
	categoryService := service.NewCategoryService(repository.NewCategoryRepository(db), productService)
	return categoryService, db
}

func TestCategoryCreate(t *testing.T) {
	categoryService, _ := newCategoryFixture(t)

	category, err := categoryService.Create("  Gadgets  ")
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", category.Name, "Names are trimmed")
	assert.NotZero(t, category.ID)

	_, err = categoryService.Create("")
	assert.ErrorIs(t, err, service.ErrCategoryNameRequired)
	_, err = categoryService.Create("   ")
	assert.ErrorIs(t, err, service.ErrCategoryNameRequired)
}

func TestCategoryCreateDuplicate(t *testing.T) {
	categoryService, _ := newCategoryFixture(t)

	_, err := categoryService.Create("Gadgets")
	require.NoError(t, err)

	_, err = categoryService.Create("Gadgets")
	assert.ErrorIs(t, err, repository.ErrDuplicateCategory)
}

func TestCategoryUpdate(t *testing.T) {
	categoryService, _ := newCategoryFixture(t)

	category, err := categoryService.Create("Gadgets")
	require.NoError(t, err)

	updated, err := categoryService.Update(category.ID, " Widgets ")
	require.NoError(t, err)
	assert.Equal(t, "Widgets", updated.Name)

	_, err = categoryService.Update(999, "Anything")
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryUpdateDuplicateName(t *testing.T) {
	categoryService, _ := newCategoryFixture(t)

	_, err := categoryService.Create("Gadgets")
	require.NoError(t, err)
	other, err := categoryService.Create("Widgets")
	require.NoError(t, err)

	_, err = categoryService.Update(other.ID, "Gadgets")
	assert.ErrorIs(t, err, repository.ErrDuplicateCategory)
}

func TestCategoryDeleteCascades(t *testing.T) {
	categoryService, db := newCategoryFixture(t)

	doomed, err := categoryService.Create("Doomed")
	require.NoError(t, err)
	safe, err := categoryService.Create("Safe")
	require.NoError(t, err)

	now := time.Now()
	seedProduct(t, db, "in-doomed-1", 10, &doomed.ID, now.Add(-3*time.Minute))
	seedProduct(t, db, "in-doomed-2", 20, &doomed.ID, now.Add(-2*time.Minute))
	survivor := seedProduct(t, db, "in-safe", 30, &safe.ID, now.Add(-time.Minute))

	require.NoError(t, categoryService.Delete(doomed.ID))

	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(1), productCount, "Only products of the deleted category go with it")

	var remaining models.Product
	require.NoError(t, db.First(&remaining, survivor.ID).Error)
	assert.Equal(t, "in-safe", remaining.Name)

	categories, err := categoryService.List()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Safe", categories[0].Name)
}

func TestCategoryDeleteNotFound(t *testing.T) {
	categoryService, db := newCategoryFixture(t)

	seedProduct(t, db, "untouched", 10, nil, time.Now())

	assert.ErrorIs(t, categoryService.Delete(999), repository.ErrCategoryNotFound)

	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(1), productCount, "A failed delete must not touch any products")
}
