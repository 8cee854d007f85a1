package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	VideoID   *uuid.UUID `gorm:"type:uuid;index" json:"video,omitempty"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Owner     *User      `gorm:"foreignKey:OwnerID" json:"-"`
}
