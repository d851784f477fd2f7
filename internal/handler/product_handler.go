package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/internal/storage"
	"github.com/storefront-api/pkg/response"
)

// ProductHandler handles catalog API requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns one filtered catalog page
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Keyword: c.Query("keyword"),
	}

	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid category filter")
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	if v := c.Query("price_gte"); v != "" {
		bound, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "invalid price_gte filter")
			return
		}
		filter.PriceGTE = &bound
	}
	if v := c.Query("price_lte"); v != "" {
		bound, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "invalid price_lte filter")
			return
		}
		filter.PriceLTE = &bound
	}

	page := 1
	pageParam := c.Query("pageNumber")
	if pageParam == "" {
		pageParam = c.Query("page")
	}
	if pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	products, total, err := h.productService.List(filter, page)
	if err != nil {
		response.InternalError(c, "failed to list products")
		return
	}

	response.OK(c, ProductPageDTO{
		Products: newProductDTOs(products),
		Page:     page,
		Pages:    totalPages(total, service.CatalogPageSize),
	})
}

// Get returns a single product
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalError(c, "failed to load product")
		return
	}

	response.OK(c, newProductDTO(product))
}

// Create creates a product owned by the caller
// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	in := &service.ProductInput{
		Name:          c.PostForm("name"),
		Description:   c.PostForm("description"),
		ExecutionTime: c.PostForm("executionTime"),
		ExistingImage: c.PostForm("existingImage"),
		IsVirtual:     c.PostForm("isVirtual") == "true",
	}
	if in.Name == "" || in.Description == "" {
		response.BadRequest(c, "name and description are required")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		response.BadRequest(c, "a valid price is required")
		return
	}
	in.Price = price

	if v := c.PostForm("originalPrice"); v != "" {
		original, err := strconv.ParseFloat(v, 64)
		if err != nil || original < 0 {
			response.BadRequest(c, "invalid original price")
			return
		}
		in.OriginalPrice = &original
	}
	if v := c.PostForm("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid category")
			return
		}
		categoryID := uint(id)
		in.CategoryID = &categoryID
	}
	if v := c.PostForm("countInStock"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			response.BadRequest(c, "invalid count in stock")
			return
		}
		in.CountInStock = &count
	}

	in.ExistingImages, err = parseExistingImages(c.PostForm("existingImages"))
	if err != nil {
		response.BadRequest(c, "invalid existing images format")
		return
	}
	in.Image = formFile(c, "image")
	in.GalleryUploads = formFiles(c, "images")

	user := middleware.CurrentUser(c)
	product, err := h.productService.Create(user.ID, in)
	if err != nil {
		h.writeProductError(c, err)
		return
	}

	response.Created(c, newProductDTO(product))
}

// Update merges changes into a product; owner or admin only
// PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	if !canModifyProduct(c, product) {
		response.Forbidden(c, "access denied, owner or admin only")
		return
	}

	in := &service.ProductUpdate{
		ExistingImage: c.PostForm("existingImage"),
	}

	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("executionTime"); ok {
		in.ExecutionTime = &v
	}
	if v, ok := c.GetPostForm("isVirtual"); ok {
		virtual := v == "true"
		in.IsVirtual = &virtual
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			response.BadRequest(c, "invalid price")
			return
		}
		in.Price = &price
	}
	if v, ok := c.GetPostForm("originalPrice"); ok && v != "" {
		original, err := strconv.ParseFloat(v, 64)
		if err != nil || original < 0 {
			response.BadRequest(c, "invalid original price")
			return
		}
		in.OriginalPrice = &original
	}
	if v, ok := c.GetPostForm("category"); ok && v != "" {
		cid, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid category")
			return
		}
		categoryID := uint(cid)
		in.CategoryID = &categoryID
	}
	if v, ok := c.GetPostForm("countInStock"); ok && v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			response.BadRequest(c, "invalid count in stock")
			return
		}
		in.CountInStock = &count
	}

	in.ExistingImages, err = parseExistingImages(c.PostForm("existingImages"))
	if err != nil {
		response.BadRequest(c, "invalid existing images format")
		return
	}
	in.Image = formFile(c, "image")
	in.GalleryUploads = formFiles(c, "images")

	product, err = h.productService.Update(id, in)
	if err != nil {
		h.writeProductError(c, err)
		return
	}

	response.OK(c, newProductDTO(product))
}

// Delete removes a product and its image blobs; owner or admin only
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalError(c, "failed to delete product")
		return
	}
	if !canModifyProduct(c, product) {
		response.Forbidden(c, "access denied, owner or admin only")
		return
	}

	if err := h.productService.Delete(id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalError(c, "failed to delete product")
		return
	}

	response.Message(c, "product deleted successfully")
}

// canModifyProduct allows writes by the product's owner and by admins
func canModifyProduct(c *gin.Context, product *models.Product) bool {
	user := middleware.CurrentUser(c)
	if user == nil {
		return false
	}
	return user.ID == product.UserID || user.Role.IsAdmin()
}

func (h *ProductHandler) writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, service.ErrImageRequired):
		response.BadRequest(c, "a primary image or video is required")
	case errors.Is(err, service.ErrStockRequired):
		response.BadRequest(c, "count in stock is required for non-virtual products")
	case errors.Is(err, storage.ErrUnsupportedFileType):
		response.BadRequest(c, "only image, video and audio files are allowed")
	default:
		response.InternalError(c, "failed to save product")
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.POST("", protect, h.Create)
		products.PUT("/:id", protect, h.Update)
		products.DELETE("/:id", protect, h.Delete)
	}
}

// parseExistingImages decodes the JSON list of kept gallery paths
func parseExistingImages(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// formFile returns a single named upload, nil when absent
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// formFiles returns all uploads under a field name
func formFiles(c *gin.Context, name string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[name]
}
