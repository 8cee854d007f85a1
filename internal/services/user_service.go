package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

type UserService struct {
	users  repository.UserRepository
	media  media.Store
	tokens *TokenService
}

func NewUserService(users repository.UserRepository, store media.Store, tokens *TokenService) *UserService {
	return &UserService{users: users, media: store, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*dto.UserResponse, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, dto.ErrBadRequest("All fields are required")
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, dto.ErrConflict("User with email or username already exists")
	}

	if in.Avatar == nil {
		return nil, dto.ErrBadRequest("Avatar file is required")
	}

	avatar, err := s.media.Upload(ctx, in.Avatar, media.FolderAvatars)
	if err != nil || avatar.URL == "" {
		slog.Warn("avatar upload failed", "error", err)
		return nil, dto.ErrBadRequest("Avatar file is required")
	}

	var cover models.Asset
	if in.CoverImage != nil {
		cover, err = s.media.Upload(ctx, in.CoverImage, media.FolderCoverImages)
		if err != nil {
			slog.Warn("cover image upload failed", "error", err)
			cover = models.Asset{}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.discard(ctx, avatar.Key, cover.Key)
		return nil, internal("failed to hash password", err)
	}

	user := models.User{
		ID:         uuid.New(),
		FullName:   fullName,
		Email:      email,
		Username:   username,
		Password:   string(hash),
		Avatar:     avatar,
		CoverImage: cover,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		s.discard(ctx, avatar.Key, cover.Key)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, dto.ErrConflict("User with email or username already exists")
		}
		return nil, internal("failed to create user", err)
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil || created == nil {
		s.discard(ctx, avatar.Key, cover.Key)
		return nil, internal("Something went wrong while registering the user", err)
	}

	resp := dto.NewUserResponse(created)
	return &resp, nil
}

func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if email == "" && username == "" {
		return nil, dto.ErrBadRequest("username or email is required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("User does not exist")
		}
		return nil, internal("failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, dto.ErrUnauthorized("Invalid user credentials")
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, internal("Something went wrong while generating access and refresh tokens", err)
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout unsets the stored refresh token. Failures are logged; logout itself
// always succeeds.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		slog.Error("failed to clear refresh token", "user_id", userID.String(), "error", err)
	}
}

func (s *UserService) RefreshTokens(ctx context.Context, incoming string) (*dto.TokenPair, error) {
	if incoming == "" {
		return nil, dto.ErrUnauthorized("unauthorized request")
	}

	pair, err := s.tokens.RotateRefreshToken(ctx, incoming)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrRefreshTokenReuse) || errors.Is(err, ErrMissingToken) {
			return nil, dto.ErrUnauthorized(err.Error())
		}
		return nil, internal("failed to rotate refresh token", err)
	}
	return pair, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	if strings.TrimSpace(req.NewPassword) == "" {
		return dto.ErrBadRequest("New password is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ErrNotFound("User does not exist")
		}
		return internal("failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return dto.ErrBadRequest("Invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return internal("failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return internal("failed to update password", err)
	}
	return nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, req dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		return nil, dto.ErrBadRequest("All fields are required")
	}

	user, err := s.users.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, dto.ErrConflict("Email is already in use")
		case errors.Is(err, repository.ErrNotFound):
			return nil, dto.ErrNotFound("User does not exist")
		}
		return nil, internal("failed to update account", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UserResponse, error) {
	return s.replaceAsset(ctx, userID, file, media.FolderAvatars, "Avatar",
		func(u *models.User) models.Asset { return u.Avatar },
		s.users.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.UserResponse, error) {
	return s.replaceAsset(ctx, userID, file, media.FolderCoverImages, "Cover image",
		func(u *models.User) models.Asset { return u.CoverImage },
		s.users.UpdateCoverImage)
}

// replaceAsset uploads the new file, points the user at it, then deletes the
// previous object. The delete is a compensating step: its failure is logged
// and never returned.
func (s *UserService) replaceAsset(
	ctx context.Context,
	userID uuid.UUID,
	file *multipart.FileHeader,
	folder, label string,
	current func(*models.User) models.Asset,
	update func(context.Context, uuid.UUID, models.Asset) (*models.User, error),
) (*dto.UserResponse, error) {
	if file == nil {
		return nil, dto.ErrBadRequest(label + " file is missing")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("User does not exist")
		}
		return nil, internal("failed to find user", err)
	}
	oldKey := current(user).Key

	asset, err := s.media.Upload(ctx, file, folder)
	if err != nil || asset.URL == "" {
		slog.Warn("asset upload failed", "folder", folder, "error", err)
		return nil, dto.ErrBadRequest("Error while uploading " + strings.ToLower(label))
	}

	updated, err := update(ctx, userID, asset)
	if err != nil {
		s.discard(ctx, asset.Key)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("User does not exist")
		}
		return nil, internal("failed to update "+strings.ToLower(label), err)
	}

	if oldKey != "" && oldKey != asset.Key {
		if err := s.media.Delete(ctx, oldKey); err != nil {
			slog.Warn("failed to delete previous asset", "key", oldKey, "user_id", userID.String(), "error", err)
		}
	}

	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*dto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, dto.ErrBadRequest("username is missing")
	}

	profile, err := s.users.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, dto.ErrNotFound("channel does not exist")
		}
		return nil, internal("failed to load channel profile", err)
	}
	return profile, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]dto.WatchedVideo, error) {
	videos, err := s.users.WatchHistory(ctx, userID)
	if err != nil {
		return nil, internal("failed to load watch history", err)
	}

	history := make([]dto.WatchedVideo, 0, len(videos))
	for i := range videos {
		history = append(history, dto.NewWatchedVideo(&videos[i]))
	}
	return history, nil
}

func (s *UserService) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	if err := s.users.AddToWatchHistory(ctx, userID, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ErrNotFound("Video not found")
		}
		return internal("failed to record watch history", err)
	}
	return nil
}

func (s *UserService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			slog.Warn("failed to discard uploaded asset", "key", key, "error", err)
		}
	}
}

// internal logs the cause and returns a 500 that hides it from the client.
func internal(message string, err error) *dto.APIError {
	slog.Error(message, "error", err)
	return dto.ErrInternal(message)
}
