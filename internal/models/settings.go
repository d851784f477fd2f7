package models

import (
	"time"
)

// SettingsSingletonKey is the constant value of the unique key column that
// keeps the settings table at a single row: a second insert violates the
// unique index instead of racing an application-level existence check.
const SettingsSingletonKey = "default"

// Settings is the single site-wide configuration record
type Settings struct {
	ID             uint              `gorm:"primaryKey"`
	SingletonKey   string            `gorm:"uniqueIndex;size:16;not null;default:'default'"`
	SiteName       string            `gorm:"size:255;not null;default:'My Store'"`
	LogoURL        string            `gorm:"size:500;not null;default:'/default-logo.png'"`
	AboutUsContent string            `gorm:"type:text"`
	ContactEmail   string            `gorm:"size:255"`
	ContactPhone   string            `gorm:"size:50"`
	ContactAddress string            `gorm:"size:500"`
	GoogleMapsURL  string            `gorm:"size:500"`
	PaymentMethods PaymentMethodList `gorm:"type:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for Settings model
func (Settings) TableName() string {
	return "settings"
}
