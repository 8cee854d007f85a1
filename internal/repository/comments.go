package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]models.Comment, int64, error)
	UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func ownerColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "username", "avatar_key", "avatar_url")
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, translate(err)
	}
	return r.findByID(ctx, comment.ID)
}

func (r *GormCommentRepository) findByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Owner", ownerColumns).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListByVideo returns one page of comments, newest first, plus the total count.
func (r *GormCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]models.Comment, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Preload("Owner", ownerColumns).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return comments, total, nil
}

func (r *GormCommentRepository) UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*models.Comment, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.findByID(ctx, id)
}

func (r *GormCommentRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Comment{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
