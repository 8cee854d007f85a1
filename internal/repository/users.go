package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error
	ReplaceRefreshTokenHash(ctx context.Context, id uuid.UUID, oldHash, newHash string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, asset models.Asset) (*models.User, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, asset models.Asset) (*models.User, error)
	ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*dto.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.Video, error)
	AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsernameOrEmail matches on whichever identifiers are non-empty.
func (r *GormUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		return nil, ErrNotFound
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SetRefreshTokenHash writes the column directly, skipping hooks and updated_at.
func (r *GormUserRepository) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumn("refresh_token_hash", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceRefreshTokenHash swaps oldHash for newHash in one conditional
// UPDATE. ErrNotFound means the stored hash was no longer oldHash.
func (r *GormUserRepository) ReplaceRefreshTokenHash(ctx context.Context, id uuid.UUID, oldHash, newHash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token_hash = ?", id, oldHash).
		UpdateColumn("refresh_token_hash", newHash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token_hash", gorm.Expr("NULL")).Error)
}

func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
}

func (r *GormUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, asset models.Asset) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"avatar_key": asset.Key,
		"avatar_url": asset.URL,
	})
}

func (r *GormUserRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, asset models.Asset) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"cover_image_key": asset.Key,
		"cover_image_url": asset.URL,
	})
}

func (r *GormUserRepository) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

type channelProfileRow struct {
	ID                   uuid.UUID
	FullName             string
	Username             string
	Email                string
	AvatarKey            string
	AvatarURL            string
	CoverImageKey        string
	CoverImageURL        string
	SubscribersCount     int64
	ChannelsSubscribedTo int64
	IsSubscribed         bool
}

// ChannelProfile computes both subscription counts and whether viewerID
// subscribes to the channel in a single statement.
func (r *GormUserRepository) ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*dto.ChannelProfile, error) {
	var row channelProfileRow
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Select(`users.id, users.full_name, users.username, users.email,
			users.avatar_key, users.avatar_url, users.cover_image_key, users.cover_image_url,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS channels_subscribed_to,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) AS is_subscribed`, viewerID).
		Where("users.username = ?", username).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &dto.ChannelProfile{
		ID:                   row.ID,
		FullName:             row.FullName,
		Username:             row.Username,
		Email:                row.Email,
		Avatar:               models.Asset{Key: row.AvatarKey, URL: row.AvatarURL},
		CoverImage:           models.Asset{Key: row.CoverImageKey, URL: row.CoverImageURL},
		SubscribersCount:     row.SubscribersCount,
		ChannelsSubscribedTo: row.ChannelsSubscribedTo,
		IsSubscribed:         row.IsSubscribed,
	}, nil
}

// WatchHistory resolves the user's history in watch order, each video carrying
// its owner's public fields.
func (r *GormUserRepository) WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.Video, error) {
	var entries []models.WatchHistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Preload("Video").
		Preload("Video.Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "username", "avatar_key", "avatar_url")
		}).
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}

	videos := make([]models.Video, 0, len(entries))
	for _, e := range entries {
		if e.Video.ID == uuid.Nil {
			continue
		}
		videos = append(videos, e.Video)
	}
	return videos, nil
}

// AddToWatchHistory moves videoID to the end of the user's history.
func (r *GormUserRepository) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.WatchHistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.WatchHistoryEntry{
			UserID:    userID,
			VideoID:   videoID,
			WatchedAt: time.Now().UTC(),
		}).Error
	}))
}
