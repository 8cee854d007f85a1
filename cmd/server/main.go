package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.AppEnv),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Redis is optional; without it limiter counters stay in process memory.
	redisClient := cache.Connect(cfg)
	var limiterStorage fiber.Storage
	var redisPing handlers.Pinger
	if redisClient != nil {
		limiterStorage = cache.NewRedisStorage(redisClient, "videotube:limiter:")
		redisPing = func(ctx context.Context) error { return cache.Ping(ctx, redisClient) }
	}

	// Media store
	store, err := media.NewS3Store(context.Background(), cfg)
	if err != nil {
		slog.Error("media store init failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	videoRepo := repository.NewVideoRepository(database.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)

	// Services
	tokenService := services.NewTokenService(userRepo, cfg)
	userService := services.NewUserService(userRepo, store, tokenService)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, videoRepo)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.JSONBodyLimit(cfg.JSONBodyLimit))

	routes.Setup(app, cfg, middleware.JWTProtected(tokenService, userRepo), limiterStorage, routes.Handlers{
		User:         handlers.NewUserHandler(userService, cfg),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService),
		Comment:      handlers.NewCommentHandler(commentService),
		Health:       handlers.NewHealthHandler(database.Ping, redisPing),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
