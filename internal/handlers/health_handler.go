package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        status(ctx, h.db),
		Redis:     status(ctx, h.redis),
	}
	if resp.DB != "ok" {
		resp.Status = "degraded"
	}
	return c.JSON(dto.NewAPIResponse(fiber.StatusOK, resp, "OK"))
}

func status(ctx context.Context, ping Pinger) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "ok"
}
