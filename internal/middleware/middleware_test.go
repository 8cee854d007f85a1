package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository/repotest"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorStatus(c *fiber.Ctx, err error) error {
	if apiErr, ok := err.(*dto.APIError); ok {
		return c.Status(apiErr.StatusCode).JSON(apiErr.Response())
	}
	if fe, ok := err.(*fiber.Error); ok {
		return c.SendStatus(fe.Code)
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}

func status(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: time.Hour,
	}
	users := repotest.NewUsers()
	tokens := services.NewTokenService(users, cfg)

	user := &models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(context.Background(), user))
	pair, err := tokens.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/me", JWTProtected(tokens, users), func(c *fiber.Ctx) error {
		u, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return c.SendString(u.Username)
	})

	bearer := httptest.NewRequest(http.MethodGet, "/me", nil)
	bearer.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	assert.Equal(t, fiber.StatusOK, status(t, app, bearer))

	viaCookie := httptest.NewRequest(http.MethodGet, "/me", nil)
	viaCookie.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: pair.AccessToken})
	assert.Equal(t, fiber.StatusOK, status(t, app, viaCookie))

	refreshAsAccess := httptest.NewRequest(http.MethodGet, "/me", nil)
	refreshAsAccess.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.RefreshToken)
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, refreshAsAccess))

	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, httptest.NewRequest(http.MethodGet, "/me", nil)))
}

func TestJWTProtected_DeletedUser(t *testing.T) {
	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: time.Hour,
	}
	issuer := repotest.NewUsers()
	user := &models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	require.NoError(t, issuer.Create(context.Background(), user))
	pair, err := services.NewTokenService(issuer, cfg).IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	// verified against a store that no longer has the user
	empty := repotest.NewUsers()
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/me", JWTProtected(services.NewTokenService(empty, cfg), empty), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, req))
}

func TestCurrentUser_WithoutMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := CurrentUser(c)
		return err
	})
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestJSONBodyLimit(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Use(JSONBodyLimit(8))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	small.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	assert.Equal(t, fiber.StatusNoContent, status(t, app, small))

	large := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`))
	large.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, status(t, app, large))

	upload := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("--b\r\n\r\n0123456789\r\n--b--\r\n"))
	upload.Header.Set(fiber.HeaderContentType, "multipart/form-data; boundary=b")
	assert.Equal(t, fiber.StatusNoContent, status(t, app, upload))
}

func TestRateLimit_ScopesAreIndependent(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/a", RateLimit("a", 1, nil), ok)
	app.Get("/b", RateLimit("b", 1, nil), ok)

	assert.Equal(t, fiber.StatusOK, status(t, app, httptest.NewRequest(http.MethodGet, "/a", nil)))
	assert.Equal(t, fiber.StatusTooManyRequests, status(t, app, httptest.NewRequest(http.MethodGet, "/a", nil)))
	assert.Equal(t, fiber.StatusOK, status(t, app, httptest.NewRequest(http.MethodGet, "/b", nil)))
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}
