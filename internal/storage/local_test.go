package storage_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefront-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestStoreSaveAndRemove(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	fh := makeFileHeader(t, "photo.PNG", "image/png", []byte("fake png data"))

	url, err := store.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, storage.URLPrefix+"/"), "URL should live under the uploads prefix")
	assert.True(t, strings.HasSuffix(url, ".png"), "Extension should be kept, lowercased")
	assert.NotContains(t, url, "photo", "Stored name should be server generated, not client supplied")

	full := filepath.Join(store.Dir(), filepath.Base(url))
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png data"), data)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err), "Blob should be gone after Remove")
}

func TestStoreRemoveMissingBlob(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(storage.URLPrefix+"/does-not-exist.png"), "Absence is not an error")
	assert.NoError(t, store.Remove("https://elsewhere.example.com/x.png"), "Foreign URLs are ignored")
	assert.NoError(t, store.Remove(""))
}

func TestStoreUniqueNames(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	url1, err := store.Save(makeFileHeader(t, "a.jpg", "image/jpeg", []byte("one")))
	require.NoError(t, err)
	url2, err := store.Save(makeFileHeader(t, "a.jpg", "image/jpeg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2, "Same client filename must not collide")
}

func TestStoreValidate(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	testCases := []struct {
		name        string
		filename    string
		contentType string
		allowed     bool
	}{
		{"JPEG image", "a.jpg", "image/jpeg", true},
		{"PNG image", "a.png", "image/png", true},
		{"WebP image", "a.webp", "image/webp", true},
		{"MP4 video", "a.mp4", "video/mp4", true},
		{"MP3 audio", "a.mp3", "audio/mpeg", true},
		{"Uppercase extension", "A.JPG", "image/jpeg", true},
		{"Executable", "a.exe", "application/octet-stream", false},
		{"PDF document", "a.pdf", "application/pdf", false},
		{"Image extension with non-media MIME", "a.png", "application/octet-stream", false},
		{"Media MIME with bad extension", "a.sh", "image/png", false},
		{"No extension", "a", "image/png", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fh := makeFileHeader(t, tc.filename, tc.contentType, []byte("data"))
			err := store.Validate(fh)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, storage.ErrUnsupportedFileType)
			}
		})
	}
}

func TestStoreSaveRejectsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewStore(dir)
	require.NoError(t, err)

	_, err = store.Save(makeFileHeader(t, "evil.exe", "application/octet-stream", []byte("data")))
	assert.ErrorIs(t, err, storage.ErrUnsupportedFileType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "Nothing should be written for a rejected upload")
}
