package handlers

import (
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles GET /:videoId?page=&limit=.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	videoID, err := paramUUID(c, "videoId", "Invalid video id")
	if err != nil {
		return err
	}

	page, err := h.commentService.List(c.UserContext(), videoID, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, page, "Comments fetched successfully"))
}

func (h *CommentHandler) Add(c *fiber.Ctx, user *models.User) error {
	videoID, err := paramUUID(c, "videoId", "Invalid video id")
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("Content is required")
	}

	comment, err := h.commentService.Add(c.UserContext(), videoID, user.ID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAPIResponse(fiber.StatusCreated, comment, "Comment added successfully"))
}

func (h *CommentHandler) Update(c *fiber.Ctx, user *models.User) error {
	commentID, err := paramUUID(c, "commentId", "Invalid comment id")
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("Content is required")
	}

	comment, err := h.commentService.Update(c.UserContext(), commentID, user.ID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, comment, "Comment updated successfully"))
}

func (h *CommentHandler) Delete(c *fiber.Ctx, user *models.User) error {
	commentID, err := paramUUID(c, "commentId", "Invalid comment id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.UserContext(), commentID, user.ID); err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, fiber.Map{}, "Comment deleted successfully"))
}
