package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a binary object held by the media store. Key is the store's
// identifier, used to delete the object later.
type Asset struct {
	Key string `gorm:"size:255" json:"publicId"`
	URL string `gorm:"size:1024" json:"url"`
}

func (a Asset) IsZero() bool {
	return a.Key == "" && a.URL == ""
}

// User is the credential record and channel identity.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username   string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName   string    `gorm:"size:120;not null;index" json:"fullName"`
	Password   string    `gorm:"not null" json:"-"`
	Avatar     Asset     `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage Asset     `gorm:"embedded;embeddedPrefix:cover_image_" json:"coverImage"`
	// SHA-256 hex of the current refresh token; nil after logout.
	RefreshTokenHash *string   `gorm:"size:64" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
