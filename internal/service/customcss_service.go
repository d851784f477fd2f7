package service

import (
	"errors"
	"strings"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

var (
	ErrCSSFieldsRequired = errors.New("path and css are required")
)

// CustomCSSService manages per-path stylesheet overrides
type CustomCSSService struct {
	cssRepo *repository.CustomCSSRepository
}

// NewCustomCSSService creates a new CustomCSSService
func NewCustomCSSService(cssRepo *repository.CustomCSSRepository) *CustomCSSService {
	return &CustomCSSService{cssRepo: cssRepo}
}

// List retrieves all rules ordered by path
func (s *CustomCSSService) List() ([]models.CustomCSS, error) {
	return s.cssRepo.List()
}

// Save upserts the rule for a path; the path is normalized first so "/about",
// "about" and "about/ " all address the same rule
func (s *CustomCSSService) Save(path, css string) (*models.CustomCSS, error) {
	path = normalizePath(path)
	if path == "" || css == "" {
		return nil, ErrCSSFieldsRequired
	}
	return s.cssRepo.Upsert(path, css)
}

// Delete removes a rule
func (s *CustomCSSService) Delete(id uint) error {
	return s.cssRepo.Delete(id)
}

// normalizePath trims whitespace, forces a leading slash and strips any
// trailing slash (except for the root path itself)
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
