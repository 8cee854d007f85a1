package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// UserResponse is the sanitized user: never carries password or refresh token.
type UserResponse struct {
	ID         uuid.UUID    `json:"id"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	FullName   string       `json:"fullName"`
	Avatar     models.Asset `json:"avatar"`
	CoverImage models.Asset `json:"coverImage"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// OwnerSummary is the denormalized owner projection attached to videos and comments.
type OwnerSummary struct {
	ID       uuid.UUID    `json:"id"`
	FullName string       `json:"fullName"`
	Username string       `json:"username"`
	Avatar   models.Asset `json:"avatar"`
}

func NewOwnerSummary(u *models.User) OwnerSummary {
	return OwnerSummary{ID: u.ID, FullName: u.FullName, Username: u.Username, Avatar: u.Avatar}
}

type ChannelProfile struct {
	ID                   uuid.UUID    `json:"id"`
	FullName             string       `json:"fullName"`
	Username             string       `json:"username"`
	Email                string       `json:"email"`
	Avatar               models.Asset `json:"avatar"`
	CoverImage           models.Asset `json:"coverImage"`
	SubscribersCount     int64        `json:"subscribersCount"`
	ChannelsSubscribedTo int64        `json:"channelsSubscribedToCount"`
	IsSubscribed         bool         `json:"isSubscribed"`
}

type WatchedVideo struct {
	ID          uuid.UUID    `json:"id"`
	VideoFile   models.Asset `json:"videoFile"`
	Thumbnail   models.Asset `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	Owner       OwnerSummary `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func NewWatchedVideo(v *models.Video) WatchedVideo {
	return WatchedVideo{
		ID:          v.ID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       NewOwnerSummary(&v.Owner),
		CreatedAt:   v.CreatedAt,
	}
}

type RegisterRequest struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
