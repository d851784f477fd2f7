package models

import (
	"time"
)

// MediaType classifies a stored file
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
)

// Media is one entry of the media library; deleting it also removes the
// underlying blob (best-effort)
type Media struct {
	ID       uint      `gorm:"primaryKey"`
	FileName string    `gorm:"size:255;not null"` // original client filename
	FileURL  string    `gorm:"size:500;not null"` // public path of the stored blob
	FileType MediaType `gorm:"size:20;not null"`
	AltText  *string   `gorm:"size:255"`
	Size     *int64

	UploadedBy uint `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for Media model
func (Media) TableName() string {
	return "media"
}
