package models

import (
	"time"
)

// CustomCSS holds a per-path stylesheet override, e.g. "/", "/about"
type CustomCSS struct {
	ID        uint   `gorm:"primaryKey"`
	Path      string `gorm:"uniqueIndex;size:255;not null"`
	CSS       string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for CustomCSS model
func (CustomCSS) TableName() string {
	return "custom_css_rules"
}
