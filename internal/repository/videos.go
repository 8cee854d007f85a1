package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoRepository is read-only; videos are published by another service.
type VideoRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type GormVideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

func (r *GormVideoRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}
