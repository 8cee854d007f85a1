package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultCommentPageSize = 10
	maxCommentPageSize     = 100
)

type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) List(ctx context.Context, videoID uuid.UUID, page, limit int) (*dto.Page[dto.CommentResponse], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultCommentPageSize
	}
	if limit > maxCommentPageSize {
		limit = maxCommentPageSize
	}

	comments, total, err := s.comments.ListByVideo(ctx, videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, internal("failed to list comments", err)
	}

	docs := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		docs = append(docs, dto.NewCommentResponse(&comments[i]))
	}
	result := dto.NewPage(docs, total, page, limit)
	return &result, nil
}

func (s *CommentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, dto.ErrBadRequest("Content is required")
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, internal("failed to find video", err)
	}
	if !exists {
		return nil, dto.ErrNotFound("Video not found")
	}

	comment, err := s.comments.Create(ctx, &models.Comment{
		ID:      uuid.New(),
		Content: content,
		VideoID: &videoID,
		OwnerID: &ownerID,
	})
	if err != nil {
		return nil, internal("failed to add comment", err)
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, ownerID uuid.UUID, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, dto.ErrBadRequest("Content is required")
	}

	comment, err := s.comments.UpdateContent(ctx, commentID, ownerID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("Comment not found")
		}
		return nil, internal("failed to update comment", err)
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, ownerID uuid.UUID) error {
	if err := s.comments.Delete(ctx, commentID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ErrNotFound("Comment not found")
		}
		return internal("failed to delete comment", err)
	}
	return nil
}
