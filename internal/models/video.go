package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VideoFile   Asset     `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset     `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `gorm:"default:0" json:"views"`
	IsPublished bool      `gorm:"default:true" json:"isPublished"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"-"`
}

// WatchHistoryEntry is one element of a user's ordered watch history.
// Entries are ordered by ID; the most recent watch has the highest ID.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	WatchedAt time.Time `gorm:"not null" json:"watchedAt"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Video     Video     `gorm:"foreignKey:VideoID" json:"-"`
}
