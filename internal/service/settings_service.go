package service

import (
	"encoding/json"
	"errors"
	"mime/multipart"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/storage"
)

var (
	ErrInvalidPaymentMethods = errors.New("invalid payment methods format")
)

// SettingsService manages the singleton site settings record
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	store        *storage.Store
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo *repository.SettingsRepository, store *storage.Store) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		store:        store,
	}
}

// Initialize makes sure the settings record exists. Safe to call on every
// startup and under concurrent startups.
func (s *SettingsService) Initialize() error {
	return s.settingsRepo.EnsureDefault()
}

// Get retrieves the settings record
func (s *SettingsService) Get() (*models.Settings, error) {
	return s.settingsRepo.Get()
}

// SettingsUpdate carries the multipart fields of a settings update request.
// Empty strings leave the stored value untouched; PaymentMethodsJSON is the
// raw form value.
type SettingsUpdate struct {
	SiteName       string
	AboutUsContent string
	ContactEmail   string
	ContactPhone   string
	ContactAddress string
	GoogleMapsURL  string

	PaymentMethodsJSON string
	Logo               *multipart.FileHeader
	PaymentImages      []*multipart.FileHeader
}

// Update merges the provided fields into the settings record. The logo is
// replaced only when an upload is present, and payment-method images are
// matched positionally to the entries that declared an upload slot.
func (s *SettingsService) Update(in *SettingsUpdate) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	if in.SiteName != "" {
		settings.SiteName = in.SiteName
	}
	if in.AboutUsContent != "" {
		settings.AboutUsContent = in.AboutUsContent
	}
	if in.ContactEmail != "" {
		settings.ContactEmail = in.ContactEmail
	}
	if in.ContactPhone != "" {
		settings.ContactPhone = in.ContactPhone
	}
	if in.ContactAddress != "" {
		settings.ContactAddress = in.ContactAddress
	}
	if in.GoogleMapsURL != "" {
		settings.GoogleMapsURL = in.GoogleMapsURL
	}

	paymentMethods := settings.PaymentMethods
	if in.PaymentMethodsJSON != "" {
		paymentMethods = models.PaymentMethodList{}
		if err := json.Unmarshal([]byte(in.PaymentMethodsJSON), &paymentMethods); err != nil {
			return nil, ErrInvalidPaymentMethods
		}
	}

	if len(in.PaymentImages) > 0 {
		consumed := 0
		for i := range paymentMethods {
			m := &paymentMethods[i]
			if m.ImageUploadIndex == nil || *m.ImageUploadIndex != consumed || consumed >= len(in.PaymentImages) {
				continue
			}
			url, err := s.store.Save(in.PaymentImages[consumed])
			if err != nil {
				return nil, err
			}
			m.ImageURL = url
			consumed++
		}
	}
	settings.PaymentMethods = paymentMethods

	if in.Logo != nil {
		url, err := s.store.Save(in.Logo)
		if err != nil {
			return nil, err
		}
		settings.LogoURL = url
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
