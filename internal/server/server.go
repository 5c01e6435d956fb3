package server

import (
	"context"
	"fmt"
	"time"

	"churchvlog/internal/cache"
	"churchvlog/internal/config"
	"churchvlog/internal/database"
	"churchvlog/internal/eventlog"
	"churchvlog/internal/middleware"
	"churchvlog/internal/repository"
	"churchvlog/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	promMiddleware   *fiberprometheus.FiberPrometheus
	videoRepo        repository.VideoRepository
	commentRepo      repository.CommentRepository
	banRepo          repository.BanRepository
	announcementRepo repository.AnnouncementRepository
	galleryRepo      repository.GalleryRepository
	churchRepo       repository.ChurchRepository
	events           *eventlog.Recorder
	moderation       *service.ModerationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	events := eventlog.NewRecorder(db)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("churchvlog-api"),
		videoRepo:        repository.NewVideoRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		banRepo:          repository.NewBanRepository(db),
		announcementRepo: repository.NewAnnouncementRepository(db),
		galleryRepo:      repository.NewGalleryRepository(db),
		churchRepo:       repository.NewChurchRepository(db),
		events:           events,
	}
	server.moderation = service.NewModerationService(db, events)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Church Vlog Backend Metrics Dashboard",
	}))

	// Admin session routes
	api.Post("/admin/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Get("/admin/auth-status", s.AuthStatus)
	api.Post("/admin/logout", s.Logout)

	// Public content routes
	api.Get("/videos", s.GetVideos)
	api.Get("/videos/:id/comments", s.GetVideoComments)
	api.Get("/videos/:id", s.GetVideo)
	api.Post("/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "submit_comment"), s.SubmitComment)
	api.Get("/announcements", s.GetAnnouncements)
	api.Get("/gallery", s.GetGallery)
	api.Get("/church", s.GetChurchInfo)

	// Admin routes
	admin := api.Group("", middleware.AdminRequired)

	// Moderation
	admin.Get("/comments/banned", s.GetBannedDevices)
	admin.Get("/comments", s.GetAllComments)
	admin.Post("/comments/ban", s.BanDevice)
	admin.Post("/comments/unban", s.UnbanDevice)
	admin.Delete("/comments/:id", s.DeleteComment)

	// Content management
	admin.Post("/videos", s.CreateVideo)
	admin.Put("/videos/:id", s.UpdateVideo)
	admin.Delete("/videos/:id", s.DeleteVideo)
	admin.Get("/announcements/all", s.GetAllAnnouncements)
	admin.Post("/announcements", s.CreateAnnouncement)
	admin.Put("/announcements/:id", s.UpdateAnnouncement)
	admin.Delete("/announcements/:id", s.DeleteAnnouncement)
	admin.Get("/gallery/all", s.GetAllGallery)
	admin.Post("/gallery", s.CreateGalleryItem)
	admin.Put("/gallery/:id", s.UpdateGalleryItem)
	admin.Delete("/gallery/:id", s.DeleteGalleryItem)
	admin.Put("/church", s.UpdateChurchInfo)

	// Dashboard
	admin.Get("/admin/stats", s.GetAdminStats)
	admin.Get("/logs/download", s.DownloadLogs)
	admin.Get("/logs", s.GetLogs)
}

// Shutdown releases server-held resources after the HTTP listener stops.
func (s *Server) Shutdown(ctx context.Context) error {
	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	return nil
}

// HealthCheck is a simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades gracefully without Redis, so its absence does
		// not fail readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
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
