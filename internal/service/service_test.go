package service_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an isolated in-memory database with the full schema
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Settings{},
		&models.Media{},
		&models.CustomCSS{},
	))

	return db
}

// newTestStore returns a blob store rooted in a per-test temp dir
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// testJWTConfig is the token configuration used across the auth tests
func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpireHours: 1}
}

// sentMail records one delivery attempt
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer captures outbound mail instead of sending it; set fail to
// simulate a dispatch failure
type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// seedUser inserts a user with the given password already hashed
func seedUser(t *testing.T, userRepo *repository.UserRepository, username, email, passwordHash string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

// seedProduct inserts a product row directly, with an explicit creation time
// so ordering assertions are deterministic
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, categoryID *uint, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		UserID:       1,
		Name:         name,
		Description:  name + " description",
		Image:        "/uploads/" + name + ".png",
		Images:       models.StringList{},
		Price:        price,
		CountInStock: intPtr(10),
		CategoryID:   categoryID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// makeFileHeader builds a real multipart.FileHeader the way an HTTP upload
// would produce one
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
