package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/pkg/response"
)

// CategoryHandler handles category API requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns all categories
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		response.InternalError(c, "failed to list categories")
		return
	}

	dtos := make([]CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = newCategoryDTO(&categories[i])
	}
	response.OK(c, dtos)
}

// Create creates a category
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameRequired):
			response.BadRequest(c, "category name is required")
		case errors.Is(err, repository.ErrDuplicateCategory):
			response.Conflict(c, "category name already exists")
		default:
			response.InternalError(c, "failed to create category")
		}
		return
	}

	response.Created(c, newCategoryDTO(category))
}

// Update renames a category
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			response.NotFound(c, "category not found")
		case errors.Is(err, service.ErrCategoryNameRequired):
			response.BadRequest(c, "category name is required")
		case errors.Is(err, repository.ErrDuplicateCategory):
			response.Conflict(c, "category name already exists")
		default:
			response.InternalError(c, "failed to update category")
		}
		return
	}

	response.OK(c, newCategoryDTO(category))
}

// Delete removes a category and all products referencing it
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		response.InternalError(c, "failed to delete category")
		return
	}

	response.Message(c, "category and its products deleted")
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", protect, middleware.RequireAdmin(), h.Create)
		categories.PUT("/:id", protect, middleware.RequireAdmin(), h.Update)
		categories.DELETE("/:id", protect, middleware.RequireAdmin(), h.Delete)
	}
}
