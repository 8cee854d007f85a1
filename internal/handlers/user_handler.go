package handlers

import (
	"mime/multipart"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

func NewUserHandler(userService *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: userService, cfg: cfg}
}

// Register handles POST /register (multipart: avatar, optional coverImage).
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("All fields are required")
	}

	resp, err := h.userService.Register(c.UserContext(), services.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		Avatar:     formFile(c, "avatar"),
		CoverImage: formFile(c, "coverImage"),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAPIResponse(fiber.StatusCreated, resp, "User registered successfully"))
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("Invalid request body")
	}

	resp, err := h.userService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, resp.AccessToken, resp.RefreshToken)
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, "User logged in successfully"))
}

func (h *UserHandler) Logout(c *fiber.Ctx, user *models.User) error {
	h.userService.Logout(c.UserContext(), user.ID)
	h.clearTokenCookies(c)
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, fiber.Map{}, "User logged out successfully"))
}

func (h *UserHandler) RefreshToken(c *fiber.Ctx) error {
	incoming := c.Cookies(middleware.RefreshTokenCookie)
	if incoming == "" {
		var req dto.RefreshRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return dto.ErrBadRequest("Invalid request body")
			}
		}
		incoming = req.RefreshToken
	}

	pair, err := h.userService.RefreshTokens(c.UserContext(), incoming)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, pair, "Access token refreshed"))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx, user *models.User) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("Invalid request body")
	}

	if err := h.userService.ChangePassword(c.UserContext(), user.ID, req); err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, fiber.Map{}, "Password changed successfully"))
}

func (h *UserHandler) CurrentUser(c *fiber.Ctx, user *models.User) error {
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, dto.NewUserResponse(user), "Current user fetched successfully"))
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx, user *models.User) error {
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.ErrBadRequest("Invalid request body")
	}

	resp, err := h.userService.UpdateAccount(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, "Account details updated successfully"))
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx, user *models.User) error {
	resp, err := h.userService.UpdateAvatar(c.UserContext(), user.ID, formFile(c, "avatar"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, "Avatar updated successfully"))
}

func (h *UserHandler) UpdateCoverImage(c *fiber.Ctx, user *models.User) error {
	resp, err := h.userService.UpdateCoverImage(c.UserContext(), user.ID, formFile(c, "coverImage"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, "Cover image updated successfully"))
}

// ChannelProfile handles GET /c/:username.
func (h *UserHandler) ChannelProfile(c *fiber.Ctx, user *models.User) error {
	profile, err := h.userService.ChannelProfile(c.UserContext(), c.Params("username"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, profile, "User channel fetched successfully"))
}

func (h *UserHandler) WatchHistory(c *fiber.Ctx, user *models.User) error {
	history, err := h.userService.WatchHistory(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, history, "Watch history fetched successfully"))
}

// RecordWatch handles POST /history/:videoId.
func (h *UserHandler) RecordWatch(c *fiber.Ctx, user *models.User) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return dto.ErrBadRequest("Invalid video id")
	}

	if err := h.userService.RecordWatch(c.UserContext(), user.ID, videoID); err != nil {
		return err
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, fiber.Map{}, "Watch history updated"))
}

func (h *UserHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(h.cookie(middleware.AccessTokenCookie, accessToken, time.Now().Add(h.cfg.AccessTokenExpiry)))
	c.Cookie(h.cookie(middleware.RefreshTokenCookie, refreshToken, time.Now().Add(h.cfg.RefreshTokenExpiry)))
}

func (h *UserHandler) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-24 * time.Hour)
	c.Cookie(h.cookie(middleware.AccessTokenCookie, "", expired))
	c.Cookie(h.cookie(middleware.RefreshTokenCookie, "", expired))
}

func (h *UserHandler) cookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
	}
}

func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
