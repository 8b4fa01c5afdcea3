package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/redis/go-redis/v9"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

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

	// Database log sink (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, dbLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Auth primitives
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		slog.Error("token issuer setup failed", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	procurementRepo := repository.NewProcurementRepository(db)
	contractRepo := repository.NewContractRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService, err := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTAccessExpiry)
	if err != nil {
		slog.Error("auth service setup failed", "error", err)
		os.Exit(1)
	}
	reportService := services.NewReportService(db, notificationRepo)

	if cfg.HasAdminSeed() {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			slog.Error("bootstrap user failed", "error", err)
			os.Exit(1)
		}
	}

	// Login throttle
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	loginLimiter, rdb := newLoginLimiter(limiterCtx, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)
	procurementHandler := handlers.NewProcurementHandler(procurementRepo, contractRepo)
	contractHandler := handlers.NewContractHandler(contractRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	reportHandler := handlers.NewReportHandler(reportService)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, issuer, loginLimiter,
		authHandler, healthHandler, procurementHandler, contractHandler, notificationHandler, reportHandler)

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

	stopLimiter()
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

// newLoginLimiter shares the throttle through Redis when REDIS_URL is set and
// reachable, and keeps it in memory otherwise.
func newLoginLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, *redis.Client) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL, using in-memory login throttle", "error", err)
		} else {
			rdb := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := rdb.Ping(pingCtx).Err()
			cancel()
			if err == nil {
				store, err := ratelimit.NewRedisStore(rdb, cfg.LoginRateLimit, ratelimit.WithPrefix("licitacoes:login"))
				if err == nil {
					slog.Info("login throttle backed by redis")
					return store, rdb
				}
				slog.Error("redis login throttle setup failed", "error", err)
			} else {
				slog.Warn("redis unreachable, using in-memory login throttle", "error", err)
			}
			_ = rdb.Close()
		}
	}

	store, err := ratelimit.NewMemoryStore(cfg.LoginRateLimit)
	if err != nil {
		slog.Error("login throttle setup failed", "error", err)
		os.Exit(1)
	}
	store.StartJanitor(ctx)
	return store, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
