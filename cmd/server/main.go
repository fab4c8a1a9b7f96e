package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/adapter/cache"
	"github.com/seu-repo/parkpass/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/parkpass/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/parkpass/internal/adapter/queue"
	"github.com/seu-repo/parkpass/internal/adapter/storage/postgres"
	"github.com/seu-repo/parkpass/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/parkpass/internal/adapter/websocket"
	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/observability/telemetry"
	"github.com/seu-repo/parkpass/internal/service/auth"
	"github.com/seu-repo/parkpass/internal/service/business"
	"github.com/seu-repo/parkpass/internal/service/notifier"
	"github.com/seu-repo/parkpass/internal/service/scan"
	"github.com/seu-repo/parkpass/internal/service/session"
	"github.com/seu-repo/parkpass/pkg/config"
)

const (
	serviceName    = "parkpass"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting ParkPass",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Optionally override secrets from Vault
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dbURL, err := secrets.GetDatabaseURL(); err == nil {
			cfg.Database.URL = dbURL
		} else {
			logger.Warn("Vault database secret unavailable, falling back to config", zap.Error(err))
		}
		if jwtSecret, err := secrets.GetJWTSecret(); err == nil {
			cfg.JWT.Secret = jwtSecret
		} else {
			logger.Warn("Vault JWT secret unavailable, falling back to config", zap.Error(err))
		}
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// 6. Initialize Redis Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// 7. Initialize Message Queue
	messageQueue, err := newMessageQueue(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Repositories
	businessTokenRepo := postgres.NewBusinessTokenRepository(db, logger)
	sessionRepo := postgres.NewSessionRepository(db, logger)
	userRepo := postgres.NewUserRepository(db, logger)

	// 9. Initialize Services (Business Logic Layer)
	authService := auth.NewService(userRepo, redisCache, cfg.JWT.Secret, logger)
	businessTokenService := business.NewService(businessTokenRepo, logger)
	sessionService := session.NewService(sessionRepo, messageQueue, logger)
	scanService := scan.NewService(businessTokenService, sessionService, logger)
	sessionWatcher := notifier.NewWatcher(messageQueue, sessionService, logger)

	// 10. Initialize WebSocket Hub (for real-time session updates)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	sessionStreamHandler := wsAdapter.NewSessionStreamHandler(wsHub, sessionWatcher, logger)

	// 11. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	if cfg.RateLimiting.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimiting.MaxRequests,
			Expiration: cfg.RateLimiting.Window,
		}))
	}
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := redisCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get("/metrics", func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", authHandler.Me)

	// Scan routes
	scanHandler := handlers.NewScanHandler(scanService, logger)
	protected.Post("/scans", scanHandler.Resolve)

	// Session routes
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	protected.Get("/sessions/open", sessionHandler.GetOpen)
	protected.Get("/sessions/history", sessionHandler.GetHistory)
	protected.Get("/sessions/:id", sessionHandler.Get)
	protected.Post("/sessions/:id/complete", sessionHandler.Complete)

	// Business routes
	businessHandler := handlers.NewBusinessHandler(businessTokenService, sessionService, logger)
	businessOnly := protected.Group("/business", middleware.RoleRequired(domain.UserRoleBusiness))
	businessOnly.Get("/qr-code", businessHandler.GetQRCode)
	businessOnly.Post("/qr-code", businessHandler.ProvisionQRCode)
	businessOnly.Get("/sessions", businessHandler.GetOpenSessions)

	// WebSocket routes
	app.Use("/ws", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// Real-time session updates WebSocket
	app.Get("/ws/sessions", websocket.New(func(c *websocket.Conn) {
		user, ok := c.Locals("user").(*domain.User)
		if !ok {
			c.Close()
			return
		}
		sessionStreamHandler.HandleSessionStream(c, user)
	}))

	// 12. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 13. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newMessageQueue(cfg *config.Config, logger *zap.Logger) (queue.MessageQueue, error) {
	switch cfg.Queue.Driver {
	case "rabbitmq":
		return queue.NewRabbitMQQueue(cfg.RabbitMQ.URL, logger)
	case "nats", "":
		return queue.NewNATSQueue(cfg.NATS.URL, logger)
	default:
		return nil, fmt.Errorf("unknown queue driver: %s", cfg.Queue.Driver)
	}
}
