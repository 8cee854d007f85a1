package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
)

type CommentRequest struct {
	Content string `json:"content" form:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	VideoID   *uuid.UUID    `json:"video,omitempty"`
	Owner     *OwnerSummary `json:"owner,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		VideoID:   c.VideoID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Owner != nil {
		owner := NewOwnerSummary(c.Owner)
		resp.Owner = &owner
	}
	return resp
}

// Page mirrors the paginate plugin's result shape.
type Page[T any] struct {
	Docs       []T   `json:"docs"`
	TotalDocs  int64 `json:"totalDocs"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](docs []T, total int64, page, limit int) Page[T] {
	if docs == nil {
		docs = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{Docs: docs, TotalDocs: total, Page: page, Limit: limit, TotalPages: pages}
}

type SubscriptionToggleResponse struct {
	Subscribed bool `json:"subscribed"`
}
