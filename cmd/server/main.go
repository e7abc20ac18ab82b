package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	systemLogs := repository.NewSystemLogRepository(db)
	pgLogHandler := logging.NewPGHandler(systemLogs)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, pgLogHandler)))

	// Log cleanup
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	logging.StartCleanup(cleanupCtx, systemLogs, cfg.LogRetentionDays)

	// Domain events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			slog.Error("nats unavailable, events disabled", "error", err)
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
			slog.Info("nats connected", "url", cfg.NATSURL)
		}
	}

	// Shared rate limit storage
	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		redisStorage, err := cache.NewRedisStorage(cfg.RedisURL, "roomsync:limiter:")
		if err != nil {
			slog.Error("redis unavailable, using in-memory rate limits", "error", err)
		} else {
			defer redisStorage.Close()
			limiterStorage = redisStorage
		}
	}

	appMetrics := metrics.New(cfg.MetricsNamespace)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, publisher, appMetrics)
	tokenService := services.NewTokenService(cfg)
	listingService := services.NewListingService(listingRepo, userRepo, publisher, appMetrics)
	messageService := services.NewMessageService(repository.NewMessageRepository(db), userRepo, appMetrics)
	savedService := services.NewSavedListingService(repository.NewSavedListingRepository(db), listingRepo)
	reviewService := services.NewReviewService(repository.NewReviewRepository(db), listingRepo)
	profileService := services.NewProfileService(repository.NewProfileRepository(db))

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, routes.Handlers{
		Auth:           handlers.NewAuthHandler(authService, tokenService),
		Health:         handlers.NewHealthHandler(func() error { return database.Ping(db) }),
		Listing:        handlers.NewListingHandler(listingService),
		Message:        handlers.NewMessageHandler(messageService),
		Saved:          handlers.NewSavedListingHandler(savedService),
		Review:         handlers.NewReviewHandler(reviewService),
		Profile:        handlers.NewProfileHandler(profileService),
		Metrics:        appMetrics,
		LimiterStorage: limiterStorage,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
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

	stopCleanup()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
