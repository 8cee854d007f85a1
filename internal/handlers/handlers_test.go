package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/api", func(c *fiber.Ctx) error {
		return dto.NewAPIError(fiber.StatusConflict, "taken", "username")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrTooManyRequests })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })

	tests := []struct {
		path    string
		status  int
		message string
		errs    []any
	}{
		{"/api", 409, "taken", []any{"username"}},
		{"/fiber", 429, "Too Many Requests", []any{}},
		{"/plain", 500, "Internal server error", []any{}},
		{"/missing", 404, "Cannot GET /missing", []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := call(t, app, tt.path)
			assert.Equal(t, tt.status, status)
			assert.EqualValues(t, tt.status, body["statusCode"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.errs, body["errors"])
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		redis  Pinger
		status string
		redisS string
	}{
		{"healthy", func(context.Context) error { return nil }, nil, "ok", "disabled"},
		{"db down", func(context.Context) error { return errors.New("refused") }, func(context.Context) error { return nil }, "degraded", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/health", NewHealthHandler(tt.db, tt.redis).Check)

			status, body := call(t, app, "/health")
			require.Equal(t, fiber.StatusOK, status)
			data := body["data"].(map[string]any)
			assert.Equal(t, tt.status, data["status"])
			assert.Equal(t, tt.redisS, data["redis"])
		})
	}
}
