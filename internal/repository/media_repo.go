package repository

import (
	"errors"

	"github.com/storefront-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMediaNotFound = errors.New("media file not found")
)

// MediaRepository handles media library data access
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create creates a new media record
func (r *MediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

// GetByID retrieves a media record by ID
func (r *MediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	result := r.db.First(&media, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, result.Error
	}
	return &media, nil
}

// List retrieves a page of media records, newest first, with the total count
func (r *MediaRepository) List(page, pageSize int) ([]models.Media, int64, error) {
	var files []models.Media
	var total int64

	if err := r.db.Model(&models.Media{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&files)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return files, total, nil
}

// Delete hard-deletes a media record
func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Media{}, id).Error
}
