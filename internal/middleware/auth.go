package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	tokenKey = "token"
	userKey  = "currentUser"
)

// JWTProtected verifies the access token from the Authorization header or the
// accessToken cookie, loads the user it names and stores it in the request
// locals for CurrentUser.
func JWTProtected(tokens *services.TokenService, users repository.UserRepository) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: tokens.AccessSecret()},
		TokenLookup: "header:Authorization,cookie:" + AccessTokenCookie,
		AuthScheme:  "Bearer",
		ContextKey:  tokenKey,
		Claims:      &services.AccessClaims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			return attachUser(c, users)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return dto.ErrUnauthorized("Invalid access token")
		},
	})
}

func attachUser(c *fiber.Ctx, users repository.UserRepository) error {
	token, ok := c.Locals(tokenKey).(*jwt.Token)
	if !ok {
		return dto.ErrUnauthorized("Invalid access token")
	}
	claims, ok := token.Claims.(*services.AccessClaims)
	if !ok {
		return dto.ErrUnauthorized("Invalid access token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return dto.ErrUnauthorized("Invalid access token")
	}

	user, err := users.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ErrUnauthorized("Invalid access token")
		}
		return err
	}

	c.Locals(userKey, user)
	return c.Next()
}

// AuthedHandler is a route handler that receives the authenticated user.
type AuthedHandler func(c *fiber.Ctx, user *models.User) error

// WithUser adapts an AuthedHandler for a route behind JWTProtected.
func WithUser(h AuthedHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return h(c, user)
	}
}

// CurrentUser returns the user attached by JWTProtected.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok || user == nil {
		return nil, dto.ErrUnauthorized("Unauthorized request")
	}
	return user, nil
}
