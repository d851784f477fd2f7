package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/pkg/response"
)

// CustomCSSHandler handles per-path CSS rule API requests
type CustomCSSHandler struct {
	cssService *service.CustomCSSService
}

// NewCustomCSSHandler creates a new CustomCSSHandler
func NewCustomCSSHandler(cssService *service.CustomCSSService) *CustomCSSHandler {
	return &CustomCSSHandler{cssService: cssService}
}

// List returns all rules for the admin editor
// GET /api/custom-css
func (h *CustomCSSHandler) List(c *gin.Context) {
	rules, err := h.cssService.List()
	if err != nil {
		response.InternalError(c, "failed to list css rules")
		return
	}

	dtos := make([]CSSRuleDTO, len(rules))
	for i := range rules {
		dtos[i] = newCSSRuleDTO(&rules[i])
	}
	response.OK(c, dtos)
}

// ListPublic returns only what the storefront needs to apply the rules
// GET /api/custom-css/public
func (h *CustomCSSHandler) ListPublic(c *gin.Context) {
	rules, err := h.cssService.List()
	if err != nil {
		response.InternalError(c, "failed to list css rules")
		return
	}

	dtos := make([]PublicCSSRuleDTO, len(rules))
	for i, rule := range rules {
		dtos[i] = PublicCSSRuleDTO{Path: rule.Path, CSS: rule.CSS}
	}
	response.OK(c, dtos)
}

// Save upserts the rule for a path
// POST /api/custom-css
func (h *CustomCSSHandler) Save(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
		CSS  string `json:"css" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rule, err := h.cssService.Save(req.Path, req.CSS)
	if err != nil {
		if errors.Is(err, service.ErrCSSFieldsRequired) {
			response.BadRequest(c, "path and css are required")
			return
		}
		response.InternalError(c, "failed to save css rule")
		return
	}

	response.Created(c, newCSSRuleDTO(rule))
}

// Delete removes a rule
// DELETE /api/custom-css/:id
func (h *CustomCSSHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	if err := h.cssService.Delete(id); err != nil {
		if errors.Is(err, repository.ErrCSSRuleNotFound) {
			response.NotFound(c, "css rule not found")
			return
		}
		response.InternalError(c, "failed to delete css rule")
		return
	}

	response.Message(c, "css rule deleted successfully")
}

// RegisterRoutes registers custom CSS routes
func (h *CustomCSSHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	css := rg.Group("/custom-css")
	{
		css.GET("/public", h.ListPublic)
		css.GET("", protect, middleware.RequireAdmin(), h.List)
		css.POST("", protect, middleware.RequireAdmin(), h.Save)
		css.DELETE("/:id", protect, middleware.RequireAdmin(), h.Delete)
	}
}
