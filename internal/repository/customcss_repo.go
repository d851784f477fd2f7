package repository

import (
	"errors"

	"github.com/storefront-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCSSRuleNotFound = errors.New("css rule not found")
)

// CustomCSSRepository handles per-path CSS rule data access
type CustomCSSRepository struct {
	db *gorm.DB
}

// NewCustomCSSRepository creates a new CustomCSSRepository
func NewCustomCSSRepository(db *gorm.DB) *CustomCSSRepository {
	return &CustomCSSRepository{db: db}
}

// List retrieves all rules ordered by path
func (r *CustomCSSRepository) List() ([]models.CustomCSS, error) {
	var rules []models.CustomCSS
	result := r.db.Order("path ASC").Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}
	return rules, nil
}

// Upsert creates the rule for a path or replaces its CSS when the path
// already has one
func (r *CustomCSSRepository) Upsert(path, css string) (*models.CustomCSS, error) {
	var rule models.CustomCSS

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("path = ?", path).First(&rule).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rule = models.CustomCSS{Path: path, CSS: css}
			return tx.Create(&rule).Error
		}
		if err != nil {
			return err
		}
		rule.CSS = css
		return tx.Save(&rule).Error
	})
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

// Delete hard-deletes a rule; missing rules report ErrCSSRuleNotFound
func (r *CustomCSSRepository) Delete(id uint) error {
	result := r.db.Delete(&models.CustomCSS{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCSSRuleNotFound
	}
	return nil
}
