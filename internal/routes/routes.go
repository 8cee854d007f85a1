package routes

import (
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	User         *handlers.UserHandler
	Subscription *handlers.SubscriptionHandler
	Comment      *handlers.CommentHandler
	Health       *handlers.HealthHandler
}

// Setup mounts every route under /api/v1. protected must authenticate the
// request and attach the acting user (middleware.JWTProtected).
func Setup(app *fiber.App, cfg *config.Config, protected fiber.Handler, limiterStorage fiber.Storage, h Handlers) {
	authed := middleware.WithUser

	api := app.Group("/api/v1", middleware.RateLimit("api", cfg.RateLimitMax, limiterStorage))

	api.Get("/healthcheck", h.Health.Check)

	// Users: credential endpoints get a stricter limit
	users := api.Group("/users")
	authLimit := middleware.RateLimit("auth", cfg.AuthRateLimitMax, limiterStorage)
	users.Post("/register", authLimit, h.User.Register)
	users.Post("/login", authLimit, h.User.Login)
	users.Post("/refresh-token", authLimit, h.User.RefreshToken)

	users.Post("/logout", protected, authed(h.User.Logout))
	users.Post("/change-password", protected, authed(h.User.ChangePassword))
	users.Get("/current-user", protected, authed(h.User.CurrentUser))
	users.Patch("/update-account", protected, authed(h.User.UpdateAccount))
	users.Patch("/avatar", protected, authed(h.User.UpdateAvatar))
	users.Patch("/cover-image", protected, authed(h.User.UpdateCoverImage))
	users.Get("/c/:username", protected, authed(h.User.ChannelProfile))
	users.Get("/history", protected, authed(h.User.WatchHistory))
	users.Post("/history/:videoId", protected, authed(h.User.RecordWatch))

	subscriptions := api.Group("/subscriptions", protected)
	subscriptions.Post("/c/:channelId", authed(h.Subscription.Toggle))
	subscriptions.Get("/c/:channelId", h.Subscription.Subscribers)
	subscriptions.Get("/u/:subscriberId", h.Subscription.SubscribedChannels)

	comments := api.Group("/comments", protected)
	comments.Patch("/c/:commentId", authed(h.Comment.Update))
	comments.Delete("/c/:commentId", authed(h.Comment.Delete))
	comments.Get("/:videoId", h.Comment.List)
	comments.Post("/:videoId", authed(h.Comment.Add))
}
