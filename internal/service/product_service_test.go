package service_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductFixture(t *testing.T) (*service.ProductService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := setupDB(t)
	store := newTestStore(t)
	return service.NewProductService(repository.NewProductRepository(db), store), db, store
}

func TestProductCreateRequiresImage(t *testing.T) {
	productService, _, _ := newProductFixture(t)

	_, err := productService.Create(1, &service.ProductInput{
		Name:         "Widget",
		Description:  "A widget",
		Price:        9.99,
		CountInStock: intPtr(5),
	})
	assert.ErrorIs(t, err, service.ErrImageRequired)
}

func TestProductCreateWithExistingImage(t *testing.T) {
	productService, _, _ := newProductFixture(t)

	product, err := productService.Create(7, &service.ProductInput{
		Name:          "Widget",
		Description:   "A widget",
		Price:         9.99,
		CountInStock:  intPtr(5),
		ExistingImage: "/uploads/already-there.png",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), product.UserID)
	assert.Equal(t, "/uploads/already-there.png", product.Image)
	assert.Empty(t, product.Images)
}

func TestProductCreateWithUpload(t *testing.T) {
	productService, _, store := newProductFixture(t)

	product, err := productService.Create(1, &service.ProductInput{
		Name:         "Widget",
		Description:  "A widget",
		Price:        9.99,
		CountInStock: intPtr(5),
		Image:        makeFileHeader(t, "widget.png", "image/png", []byte("img")),
	})
	require.NoError(t, err)

	assert.Contains(t, product.Image, storage.URLPrefix+"/")
	_, statErr := os.Stat(filepath.Join(store.Dir(), filepath.Base(product.Image)))
	assert.NoError(t, statErr, "The uploaded blob should exist on disk")
}

func TestProductStockRule(t *testing.T) {
	productService, _, _ := newProductFixture(t)

	// Physical products must carry a stock count
	_, err := productService.Create(1, &service.ProductInput{
		Name:          "Widget",
		Description:   "A widget",
		Price:         9.99,
		ExistingImage: "/uploads/x.png",
	})
	assert.ErrorIs(t, err, service.ErrStockRequired)

	// Virtual products never carry one, even when the client sends it
	product, err := productService.Create(1, &service.ProductInput{
		Name:          "Consulting",
		Description:   "An hour of consulting",
		Price:         100,
		IsVirtual:     true,
		CountInStock:  intPtr(3),
		ExecutionTime: "within 2 days",
		ExistingImage: "/uploads/x.png",
	})
	require.NoError(t, err)
	assert.Nil(t, product.CountInStock)
	assert.Equal(t, "within 2 days", product.ExecutionTime)
}

func TestProductListPagination(t *testing.T) {
	productService, db, _ := newProductFixture(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedProduct(t, db, fmt.Sprintf("product-%02d", i), float64(i), nil, base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := productService.List(repository.ProductFilter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page1, service.CatalogPageSize)
	assert.Equal(t, "product-24", page1[0].Name, "Newest first")

	page2, _, err := productService.List(repository.ProductFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, page2, service.CatalogPageSize)

	page3, _, err := productService.List(repository.ProductFilter{}, 3)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Equal(t, "product-00", page3[0].Name, "Oldest lands on the last page")

	page4, _, err := productService.List(repository.ProductFilter{}, 4)
	require.NoError(t, err)
	assert.Empty(t, page4, "Past-the-end pages are empty, not an error")

	// Page numbers below one clamp to the first page
	clamped, _, err := productService.List(repository.ProductFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, page1[0].Name, clamped[0].Name)
}

func TestProductListKeywordFilter(t *testing.T) {
	productService, db, _ := newProductFixture(t)

	category := &models.Category{Name: "Gadgets"}
	require.NoError(t, db.Create(category).Error)

	now := time.Now()
	seedProduct(t, db, "Blue Widget", 10, nil, now.Add(-3*time.Minute))
	seedProduct(t, db, "Red Thing", 20, &category.ID, now.Add(-2*time.Minute))
	other := seedProduct(t, db, "Plain", 30, nil, now.Add(-time.Minute))
	other.Description = "contains widget somewhere"
	require.NoError(t, db.Save(other).Error)

	// Case-insensitive match on the product name
	items, total, err := productService.List(repository.ProductFilter{Keyword: "WIDGET"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "Name and description matches both count")
	assert.Len(t, items, 2)

	// Match via the joined category name
	items, total, err = productService.List(repository.ProductFilter{Keyword: "gadget"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Red Thing", items[0].Name)

	_, total, err = productService.List(repository.ProductFilter{Keyword: "nomatch"}, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestProductListCategoryAndPriceFilters(t *testing.T) {
	productService, db, _ := newProductFixture(t)

	category := &models.Category{Name: "Gadgets"}
	require.NoError(t, db.Create(category).Error)

	now := time.Now()
	seedProduct(t, db, "cheap", 5, &category.ID, now.Add(-3*time.Minute))
	seedProduct(t, db, "mid", 50, &category.ID, now.Add(-2*time.Minute))
	seedProduct(t, db, "expensive", 500, nil, now.Add(-time.Minute))

	_, total, err := productService.List(repository.ProductFilter{CategoryID: &category.ID}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	items, total, err := productService.List(repository.ProductFilter{
		PriceGTE: floatPtr(10),
		PriceLTE: floatPtr(100),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "mid", items[0].Name)

	// Combined filters intersect
	_, total, err = productService.List(repository.ProductFilter{
		CategoryID: &category.ID,
		PriceGTE:   floatPtr(100),
	}, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestProductUpdatePartialMerge(t *testing.T) {
	productService, db, _ := newProductFixture(t)

	product := seedProduct(t, db, "Widget", 10, nil, time.Now())

	updated, err := productService.Update(product.ID, &service.ProductUpdate{
		Price: floatPtr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget", updated.Name, "Unset fields keep their value")
	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, product.UserID, updated.UserID, "Ownership never changes")

	// Switching to virtual drops the stock count
	updated, err = productService.Update(product.ID, &service.ProductUpdate{
		IsVirtual: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CountInStock)
}

func TestProductUpdateNotFound(t *testing.T) {
	productService, _, _ := newProductFixture(t)

	_, err := productService.Update(999, &service.ProductUpdate{Price: floatPtr(1)})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductDeleteRemovesBlobs(t *testing.T) {
	productService, _, store := newProductFixture(t)

	product, err := productService.Create(1, &service.ProductInput{
		Name:           "Widget",
		Description:    "A widget",
		Price:          9.99,
		CountInStock:   intPtr(5),
		Image:          makeFileHeader(t, "main.png", "image/png", []byte("main")),
		GalleryUploads: nil,
	})
	require.NoError(t, err)

	blob := filepath.Join(store.Dir(), filepath.Base(product.Image))
	_, err = os.Stat(blob)
	require.NoError(t, err)

	require.NoError(t, productService.Delete(product.ID))

	_, err = productService.GetByID(product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	_, err = os.Stat(blob)
	assert.True(t, os.IsNotExist(err), "The image blob should be cleaned up")

	assert.ErrorIs(t, productService.Delete(product.ID), repository.ErrProductNotFound)
}

func TestProductGalleryRebuild(t *testing.T) {
	productService, db, _ := newProductFixture(t)

	product := seedProduct(t, db, "Widget", 10, nil, time.Now())
	product.Images = models.StringList{"/uploads/a.png", "/uploads/b.png"}
	require.NoError(t, db.Save(product).Error)

	// Keeping only one path drops the other from the gallery
	updated, err := productService.Update(product.ID, &service.ProductUpdate{
		ExistingImages: []string{"/uploads/b.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"/uploads/b.png"}, updated.Images)
}
