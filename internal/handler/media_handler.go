package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/internal/storage"
	"github.com/storefront-api/pkg/response"
)

// MediaHandler handles media library API requests
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload stores a new file in the media library
// POST /api/media/upload
func (h *MediaHandler) Upload(c *gin.Context) {
	fh := formFile(c, "file")
	if fh == nil {
		response.BadRequest(c, "no file attached")
		return
	}

	var altText *string
	if v, ok := c.GetPostForm("altText"); ok && v != "" {
		altText = &v
	}

	user := middleware.CurrentUser(c)
	media, err := h.mediaService.Upload(user.ID, fh, altText)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFileType) {
			response.BadRequest(c, "only image, video and audio files are allowed")
			return
		}
		response.InternalError(c, "failed to upload file")
		return
	}

	response.Created(c, newMediaDTO(media))
}

// List returns one page of the media library
// GET /api/media
func (h *MediaHandler) List(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	limit := service.MediaPageSize
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}

	files, total, err := h.mediaService.List(page, limit)
	if err != nil {
		response.InternalError(c, "failed to list media")
		return
	}

	dtos := make([]MediaDTO, len(files))
	for i := range files {
		dtos[i] = newMediaDTO(&files[i])
	}

	response.OK(c, MediaPageDTO{
		MediaFiles: dtos,
		Page:       page,
		Pages:      totalPages(total, limit),
		Total:      total,
	})
}

// Delete removes a media record and its blob
// DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid media id")
		return
	}

	if err := h.mediaService.Delete(id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			response.NotFound(c, "media file not found")
			return
		}
		response.InternalError(c, "failed to delete media file")
		return
	}

	response.Message(c, "file deleted successfully")
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	media := rg.Group("/media", protect, middleware.RequireAdmin())
	{
		media.POST("/upload", h.Upload)
		media.GET("", h.List)
		media.DELETE("/:id", h.Delete)
	}
}
