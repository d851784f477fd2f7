package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/storage"
	"github.com/storefront-api/pkg/response"
)

// UploadHandler handles the generic image upload used by the content editor
type UploadHandler struct {
	store *storage.Store
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store *storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload stores a single file and returns its public URL
// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fh := formFile(c, "image")
	if fh == nil {
		response.BadRequest(c, "no file uploaded")
		return
	}

	url, err := h.store.Save(fh)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFileType) {
			response.BadRequest(c, "only image, video and audio files are allowed")
			return
		}
		response.InternalError(c, "failed to store file")
		return
	}

	// The field name is kept for compatibility with the editor frontend
	response.OK(c, gin.H{"imageUrl": url})
}

// RegisterRoutes registers the upload route
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	rg.POST("/upload", protect, middleware.RequireAdmin(), h.Upload)
}
