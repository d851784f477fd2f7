package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedFileType is returned when an upload fails the allow-list
var ErrUnsupportedFileType = errors.New("only image, video and audio files are allowed")

// allowedExtensions is the upload allow-list by file extension
var allowedExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true, ".mpeg": true,
	".mp3": true, ".wav": true, ".ogg": true,
}

// allowedMIMEPrefixes is the upload allow-list by declared content type
var allowedMIMEPrefixes = []string{"image/", "video/", "audio/"}

// URLPrefix is the public path prefix under which stored blobs are served
const URLPrefix = "/uploads"

// Store is a local-disk blob store with path-based addressing. Files are
// written under the configured directory and addressed by their public URL.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create uploads dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Validate checks an upload against the extension and MIME allow-lists
func (s *Store) Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFileType
	}

	contentType := fh.Header.Get("Content-Type")
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return nil
		}
	}
	return ErrUnsupportedFileType
}

// Save validates the upload, writes it under a server-generated unique
// filename and returns its public URL
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path.Join(URLPrefix, name), nil
}

// Remove deletes the blob behind a public URL. Absence is not an error, and
// paths outside the uploads prefix are ignored.
func (s *Store) Remove(fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, URLPrefix+"/")
	if !ok {
		return nil
	}

	// filepath.Base keeps the deletion inside the uploads dir
	full := filepath.Join(s.dir, filepath.Base(rel))
	err := os.Remove(full)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory blobs are stored in
func (s *Store) Dir() string {
	return s.dir
}
