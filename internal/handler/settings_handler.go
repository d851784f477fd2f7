package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/internal/storage"
	"github.com/storefront-api/pkg/response"
)

// SettingsHandler handles site settings API requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the site settings
// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			response.NotFound(c, "settings not found")
			return
		}
		response.InternalError(c, "failed to load settings")
		return
	}

	response.OK(c, newSettingsDTO(settings))
}

// Update merges changes into the site settings
// PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	in := &service.SettingsUpdate{
		SiteName:           c.PostForm("siteName"),
		AboutUsContent:     c.PostForm("aboutUsContent"),
		ContactEmail:       c.PostForm("contactEmail"),
		ContactPhone:       c.PostForm("contactPhone"),
		ContactAddress:     c.PostForm("contactAddress"),
		GoogleMapsURL:      c.PostForm("googleMapsUrl"),
		PaymentMethodsJSON: c.PostForm("paymentMethods"),
		Logo:               formFile(c, "logo"),
		PaymentImages:      formFiles(c, "paymentMethodImages"),
	}

	settings, err := h.settingsService.Update(in)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSettingsNotFound):
			response.NotFound(c, "settings not found")
		case errors.Is(err, service.ErrInvalidPaymentMethods):
			response.BadRequest(c, "invalid payment methods format")
		case errors.Is(err, storage.ErrUnsupportedFileType):
			response.BadRequest(c, "only image, video and audio files are allowed")
		default:
			response.InternalError(c, "failed to update settings")
		}
		return
	}

	response.OK(c, newSettingsDTO(settings))
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", protect, middleware.RequireAdmin(), h.Update)
	}
}
