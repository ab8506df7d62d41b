// Package server contains the HTTP handlers for the postboard API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "postboard/docs" // swagger docs
	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/events"
	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const rootPage = "<h1>postboard API</h1>"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	publisher      events.Publisher
	postService    *service.PostService
	likeService    *service.LikeService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			if cfg.EventsBackend == config.EventsBackendRedis {
				return nil, err
			}
			middleware.Logger.Warn("Redis unavailable, continuing without it", slog.String("error", err.Error()))
			redisClient = nil
		}
	}

	return NewServerWithDeps(cfg, db, redisClient, newPublisher(cfg, redisClient))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil publisher discards events.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher events.Publisher) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("postboard-api"),
		publisher:      publisher,
		postService:    service.NewPostService(repository.NewPostRepository(db), publisher),
		likeService:    service.NewLikeService(repository.NewLikeRepository(db), publisher),
	}, nil
}

func newPublisher(cfg *config.Config, redisClient *redis.Client) events.Publisher {
	switch cfg.EventsBackend {
	case config.EventsBackendRedis:
		return events.NewRedisPublisher(redisClient, cfg.EventsChannel)
	case config.EventsBackendKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return events.NopPublisher{}
	}
}

// SetupMiddleware registers the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(s.config.Origins(), ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "postboard Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	posts.Delete("/:id", s.DeletePost)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
}

// App builds the Fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "postboard API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler is the last resort for errors returned by handlers and middleware.
// Fiber errors keep their status; anything else is an opaque 500.
func errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: "Internal server error",
		Code:  models.CodeInternal,
	})
}

// Root serves the fixed HTML landing page.
func (s *Server) Root(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(rootPage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database and, when configured, Redis answer.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and blocks serving on the configured port.
func (s *Server) Start() error {
	s.app = s.App()

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.publisher.Close(); err != nil {
		middleware.Logger.Error("error closing event publisher", slog.String("error", err.Error()))
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
