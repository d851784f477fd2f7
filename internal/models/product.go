package models

import (
	"time"
)

// Product represents a catalog item
type Product struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      uint       `gorm:"index;not null"` // owning user, immutable after creation
	Name        string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text;not null"`
	Image       string     `gorm:"size:500;not null"` // primary image path
	Images      StringList `gorm:"type:json"`         // gallery paths, ordered
	Price       float64    `gorm:"not null;default:0"`

	// OriginalPrice is shown struck through when greater than Price
	OriginalPrice *float64

	// CountInStock must be null when IsVirtual and set otherwise
	CountInStock  *int
	IsVirtual     bool   `gorm:"not null;default:false"`
	ExecutionTime string `gorm:"size:100"` // delivery estimate for virtual products

	CategoryID *uint `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}
