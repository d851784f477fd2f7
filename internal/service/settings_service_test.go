package service_test

import (
	"mime/multipart"
	"testing"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture(t *testing.T) (*service.SettingsService, *repository.SettingsRepository) {
	t.Helper()
	db := setupDB(t)
	settingsRepo := repository.NewSettingsRepository(db)
	return service.NewSettingsService(settingsRepo, newTestStore(t)), settingsRepo
}

func TestSettingsInitializeIdempotent(t *testing.T) {
	settingsService, settingsRepo := newSettingsFixture(t)

	require.NoError(t, settingsService.Initialize())
	require.NoError(t, settingsService.Initialize())
	require.NoError(t, settingsService.Initialize())

	count, err := settingsRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "The settings record is a singleton")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, models.SettingsSingletonKey, settings.SingletonKey)
	assert.Empty(t, settings.PaymentMethods)
}

func TestSettingsGetBeforeInitialize(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)

	_, err := settingsService.Get()
	assert.ErrorIs(t, err, repository.ErrSettingsNotFound)
}

func TestSettingsUpdateMergesFields(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)
	require.NoError(t, settingsService.Initialize())

	_, err := settingsService.Update(&service.SettingsUpdate{
		SiteName:     "My Shop",
		ContactEmail: "hello@example.com",
	})
	require.NoError(t, err)

	// A later update with other fields leaves the first ones alone
	updated, err := settingsService.Update(&service.SettingsUpdate{
		ContactPhone: "+1 555 0100",
	})
	require.NoError(t, err)

	assert.Equal(t, "My Shop", updated.SiteName)
	assert.Equal(t, "hello@example.com", updated.ContactEmail)
	assert.Equal(t, "+1 555 0100", updated.ContactPhone)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "My Shop", settings.SiteName, "Changes are persisted")
}

func TestSettingsUpdatePaymentMethods(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)
	require.NoError(t, settingsService.Initialize())

	updated, err := settingsService.Update(&service.SettingsUpdate{
		PaymentMethodsJSON: `[{"title":"Bank transfer","description":"IBAN on request","imageUrl":"/uploads/bank.png"}]`,
	})
	require.NoError(t, err)
	require.Len(t, updated.PaymentMethods, 1)
	assert.Equal(t, "Bank transfer", updated.PaymentMethods[0].Title)

	// The list survives an unrelated update
	updated, err = settingsService.Update(&service.SettingsUpdate{SiteName: "Shop"})
	require.NoError(t, err)
	require.Len(t, updated.PaymentMethods, 1)

	// An empty array clears it
	updated, err = settingsService.Update(&service.SettingsUpdate{PaymentMethodsJSON: `[]`})
	require.NoError(t, err)
	assert.Empty(t, updated.PaymentMethods)
}

func TestSettingsUpdateInvalidPaymentMethods(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)
	require.NoError(t, settingsService.Initialize())

	_, err := settingsService.Update(&service.SettingsUpdate{
		PaymentMethodsJSON: `{"not":"a list"`,
	})
	assert.ErrorIs(t, err, service.ErrInvalidPaymentMethods)
}

func TestSettingsUpdatePaymentImagesPositional(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)
	require.NoError(t, settingsService.Initialize())

	// Entry 0 keeps its stored image, entries 1 and 2 each declare an upload
	// slot; the two uploaded files land on them in order
	updated, err := settingsService.Update(&service.SettingsUpdate{
		PaymentMethodsJSON: `[
			{"title":"Bank","imageUrl":"/uploads/bank.png"},
			{"title":"Card","imageUploadIndex":0},
			{"title":"Crypto","imageUploadIndex":1}
		]`,
		PaymentImages: []*multipart.FileHeader{
			makeFileHeader(t, "card.png", "image/png", []byte("card")),
			makeFileHeader(t, "crypto.png", "image/png", []byte("crypto")),
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.PaymentMethods, 3)

	assert.Equal(t, "/uploads/bank.png", updated.PaymentMethods[0].ImageURL)
	assert.NotEmpty(t, updated.PaymentMethods[1].ImageURL)
	assert.NotEmpty(t, updated.PaymentMethods[2].ImageURL)
	assert.NotEqual(t, updated.PaymentMethods[1].ImageURL, updated.PaymentMethods[2].ImageURL)
}

func TestSettingsUpdateLogo(t *testing.T) {
	settingsService, _ := newSettingsFixture(t)
	require.NoError(t, settingsService.Initialize())

	updated, err := settingsService.Update(&service.SettingsUpdate{
		Logo: makeFileHeader(t, "logo.png", "image/png", []byte("logo")),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.LogoURL)

	// No upload leaves the logo alone
	again, err := settingsService.Update(&service.SettingsUpdate{SiteName: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, updated.LogoURL, again.LogoURL)
}
