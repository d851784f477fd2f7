package models

import (
	"time"
)

// Category groups products; a product may exist without one
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
