package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.User, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.User, error)
}

type GormSubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Toggle removes the (subscriber, channel) edge if present and creates it
// otherwise. It reports whether the edge exists afterwards.
func (r *GormSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var subscribed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}
		subscribed = true
		return tx.Create(&models.Subscription{
			ID:           uuid.New(),
			SubscriberID: subscriberID,
			ChannelID:    channelID,
		}).Error
	})
	if err != nil {
		return false, translate(err)
	}
	return subscribed, nil
}

func (r *GormSubscriptionRepository) Subscribers(ctx context.Context, channelID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Find(&users).Error
	return users, translate(err)
}

func (r *GormSubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Find(&users).Error
	return users, translate(err)
}
