package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/google/uuid"
)

type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users}
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*dto.SubscriptionToggleResponse, error) {
	if subscriberID == channelID {
		return nil, dto.ErrBadRequest("You cannot subscribe to your own channel")
	}

	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("channel does not exist")
		}
		return nil, internal("failed to find channel", err)
	}

	subscribed, err := s.subscriptions.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, internal("failed to toggle subscription", err)
	}
	return &dto.SubscriptionToggleResponse{Subscribed: subscribed}, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID) ([]dto.OwnerSummary, error) {
	users, err := s.subscriptions.Subscribers(ctx, channelID)
	if err != nil {
		return nil, internal("failed to list subscribers", err)
	}
	return summaries(users), nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]dto.OwnerSummary, error) {
	users, err := s.subscriptions.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, internal("failed to list subscribed channels", err)
	}
	return summaries(users), nil
}

func summaries(users []models.User) []dto.OwnerSummary {
	out := make([]dto.OwnerSummary, 0, len(users))
	for i := range users {
		out = append(out, dto.NewOwnerSummary(&users[i]))
	}
	return out
}
