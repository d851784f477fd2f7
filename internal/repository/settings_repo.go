package repository

import (
	"errors"

	"github.com/storefront-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

// SettingsRepository handles the singleton settings record
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// EnsureDefault inserts the default settings row if none exists. The unique
// constraint on the constant singleton key makes this safe under concurrent
// startup: the loser of the race gets a duplicate-key error, which counts as
// success.
func (r *SettingsRepository) EnsureDefault() error {
	settings := &models.Settings{
		SingletonKey:   models.SettingsSingletonKey,
		PaymentMethods: models.PaymentMethodList{},
	}
	err := r.db.Create(settings).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Get retrieves the settings record
func (r *SettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	result := r.db.Where("singleton_key = ?", models.SettingsSingletonKey).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, result.Error
	}
	return &settings, nil
}

// Update persists all fields of the settings record
func (r *SettingsRepository) Update(settings *models.Settings) error {
	return r.db.Save(settings).Error
}

// Count counts settings rows; anything above one is a bug
func (r *SettingsRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Settings{}).Count(&count).Error
	return count, err
}
