package service

import (
	"mime/multipart"
	"strings"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/storage"
)

// MediaPageSize is the default page size of the media library listing
const MediaPageSize = 12

// MediaService manages the media library and its blobs
type MediaService struct {
	mediaRepo *repository.MediaRepository
	store     *storage.Store
}

// NewMediaService creates a new MediaService
func NewMediaService(mediaRepo *repository.MediaRepository, store *storage.Store) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		store:     store,
	}
}

// Upload stores the blob and records it in the library
func (s *MediaService) Upload(userID uint, fh *multipart.FileHeader, altText *string) (*models.Media, error) {
	url, err := s.store.Save(fh)
	if err != nil {
		return nil, err
	}

	size := fh.Size
	media := &models.Media{
		FileName:   fh.Filename,
		FileURL:    url,
		FileType:   classifyMedia(fh.Header.Get("Content-Type")),
		AltText:    altText,
		Size:       &size,
		UploadedBy: userID,
	}

	if err := s.mediaRepo.Create(media); err != nil {
		// The record is the source of truth; drop the orphaned blob
		_ = s.store.Remove(url)
		return nil, err
	}

	return media, nil
}

// List retrieves a page of the media library
func (s *MediaService) List(page, pageSize int) ([]models.Media, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = MediaPageSize
	}
	return s.mediaRepo.List(page, pageSize)
}

// Delete removes a media record and then its blob; a missing blob is fine
func (s *MediaService) Delete(id uint) error {
	media, err := s.mediaRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.mediaRepo.Delete(id); err != nil {
		return err
	}

	_ = s.store.Remove(media.FileURL)
	return nil
}

// classifyMedia maps a MIME type onto the media taxonomy
func classifyMedia(contentType string) models.MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo
	case strings.HasPrefix(contentType, "audio/"):
		return models.MediaTypeAudio
	case contentType == "application/pdf",
		strings.HasPrefix(contentType, "application/msword"),
		strings.HasPrefix(contentType, "application/vnd.openxmlformats-officedocument"):
		return models.MediaTypeDocument
	default:
		return models.MediaTypeOther
	}
}
