package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned from a handler or middleware into
// the error envelope. Only APIError messages reach the client verbatim.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *dto.APIError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &fiberErr):
		apiErr = dto.NewAPIError(fiberErr.Code, fiberErr.Message)
	default:
		apiErr = dto.ErrInternal("Internal server error")
	}

	if apiErr.StatusCode >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(apiErr.StatusCode).JSON(apiErr.Response())
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
