package models

import (
	"time"
)

// Role represents a user's access level
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role grants admin access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a registered user
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	Email        string `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:'user'"`

	// TokenVersion is embedded in issued tokens; bumping it on password
	// change or reset invalidates every outstanding token.
	TokenVersion int `gorm:"not null;default:0"`

	// Reset fields are either both set (a pending reset) or both null.
	ResetTokenHash   *string `gorm:"size:64"`
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
