package service

import (
	"errors"
	"mime/multipart"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/storage"
)

var (
	ErrImageRequired = errors.New("a primary image or video is required")
	ErrStockRequired = errors.New("count in stock is required for non-virtual products")
)

// CatalogPageSize is the fixed page size of the public catalog listing
const CatalogPageSize = 12

// ProductService handles catalog operations
type ProductService struct {
	productRepo *repository.ProductRepository
	store       *storage.Store
}

// NewProductService creates a new ProductService
func NewProductService(productRepo *repository.ProductRepository, store *storage.Store) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		store:       store,
	}
}

// ProductInput carries the multipart fields of a product create request
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	CategoryID    *uint
	CountInStock  *int
	IsVirtual     bool
	ExecutionTime string

	Image          *multipart.FileHeader // new primary upload
	ExistingImage  string                // or an already-stored path
	GalleryUploads []*multipart.FileHeader
	ExistingImages []string
}

// ProductUpdate carries the multipart fields of a product update request;
// nil pointers leave the stored value untouched
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	CategoryID    *uint
	CountInStock  *int
	IsVirtual     *bool
	ExecutionTime *string

	Image          *multipart.FileHeader
	ExistingImage  string
	GalleryUploads []*multipart.FileHeader
	ExistingImages []string
}

// Create creates a product owned by the given user. The owner reference
// never changes afterwards.
func (s *ProductService) Create(ownerID uint, in *ProductInput) (*models.Product, error) {
	product := &models.Product{
		UserID:        ownerID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		CategoryID:    in.CategoryID,
		CountInStock:  in.CountInStock,
		IsVirtual:     in.IsVirtual,
		ExecutionTime: in.ExecutionTime,
	}

	switch {
	case in.Image != nil:
		url, err := s.store.Save(in.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	case in.ExistingImage != "":
		product.Image = in.ExistingImage
	default:
		return nil, ErrImageRequired
	}

	gallery, err := s.saveGallery(in.ExistingImages, in.GalleryUploads)
	if err != nil {
		return nil, err
	}
	product.Images = gallery

	if err := enforceStockRule(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(product.ID)
}

// GetByID retrieves a product with its category
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// List retrieves one catalog page plus the total match count
func (s *ProductService) List(filter repository.ProductFilter, page int) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.productRepo.List(filter, page, CatalogPageSize)
}

// Update merges the provided fields into a product
func (s *ProductService) Update(id uint, in *ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = in.OriginalPrice
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.CountInStock != nil {
		product.CountInStock = in.CountInStock
	}
	if in.IsVirtual != nil {
		product.IsVirtual = *in.IsVirtual
	}
	if in.ExecutionTime != nil {
		product.ExecutionTime = *in.ExecutionTime
	}

	if in.Image != nil {
		url, err := s.store.Save(in.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	} else if in.ExistingImage != "" {
		product.Image = in.ExistingImage
	}

	// The gallery is always rebuilt from the kept paths plus new uploads
	gallery, err := s.saveGallery(in.ExistingImages, in.GalleryUploads)
	if err != nil {
		return nil, err
	}
	product.Images = gallery

	if err := enforceStockRule(product); err != nil {
		return nil, err
	}

	// Detach the joined category so Save only writes the product row
	product.Category = nil
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(product.ID)
}

// Delete removes a product and then its image blobs, best-effort
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.removeBlobs(product)
	return nil
}

// RemoveBlobs deletes the image blobs of already-deleted products, used
// after a category cascade
func (s *ProductService) RemoveBlobs(products []models.Product) {
	for i := range products {
		s.removeBlobs(&products[i])
	}
}

func (s *ProductService) removeBlobs(product *models.Product) {
	_ = s.store.Remove(product.Image)
	for _, img := range product.Images {
		_ = s.store.Remove(img)
	}
}

func (s *ProductService) saveGallery(existing []string, uploads []*multipart.FileHeader) (models.StringList, error) {
	gallery := models.StringList{}
	gallery = append(gallery, existing...)
	for _, fh := range uploads {
		url, err := s.store.Save(fh)
		if err != nil {
			return nil, err
		}
		gallery = append(gallery, url)
	}
	return gallery, nil
}

// enforceStockRule applies the virtual-product stock invariant before any
// persistence: virtual products carry no stock count, physical ones must.
func enforceStockRule(product *models.Product) error {
	if product.IsVirtual {
		product.CountInStock = nil
		return nil
	}
	if product.CountInStock == nil {
		return ErrStockRequired
	}
	return nil
}
