package handlers

import (
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle handles POST /c/:channelId.
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx, user *models.User) error {
	channelID, err := paramUUID(c, "channelId", "Invalid channel id")
	if err != nil {
		return err
	}

	resp, err := h.subscriptionService.Toggle(c.UserContext(), user.ID, channelID)
	if err != nil {
		return err
	}

	message := "Unsubscribed successfully"
	if resp.Subscribed {
		message = "Subscribed successfully"
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, message))
}

// Subscribers handles GET /c/:channelId.
func (h *SubscriptionHandler) Subscribers(c *fiber.Ctx) error {
	channelID, err := paramUUID(c, "channelId", "Invalid channel id")
	if err != nil {
		return err
	}

	subscribers, err := h.subscriptionService.Subscribers(c.UserContext(), channelID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, subscribers, "Subscribers fetched successfully"))
}

// SubscribedChannels handles GET /u/:subscriberId.
func (h *SubscriptionHandler) SubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := paramUUID(c, "subscriberId", "Invalid subscriber id")
	if err != nil {
		return err
	}

	channels, err := h.subscriptionService.SubscribedChannels(c.UserContext(), subscriberID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, channels, "Subscribed channels fetched successfully"))
}

func paramUUID(c *fiber.Ctx, name, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, dto.ErrBadRequest(message)
	}
	return id, nil
}
