// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/mailer"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// postsPerPage is the fixed page size of the home listing.
const postsPerPage = 5

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       session.Store
	mail           mailer.Mailer
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	categoryRepo   repository.CategoryRepository
	postService    *service.PostService
	commentService *service.CommentService
	profileService *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return NewServerWithDeps(cfg, db, redisClient, mail), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail mailer.Mailer) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	prom := middleware.InitMetrics("quill-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		sessions:       session.NewStore(redisClient),
		mail:           mail,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		categoryRepo:   categoryRepo,
	}
	server.postService = service.NewPostService(postRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.profileService = service.NewProfileService(userRepo, postRepo, commentRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Session resolution before context propagation so user_id reaches the logs
	app.Use(s.LoadSession())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Listing, search and pagination
	app.Get("/", s.Home)
	app.Post("/", s.Home)

	// Auth
	app.Get("/login", s.LoginPage)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/logout", s.Logout)
	app.Get("/register", s.RegisterPage)
	app.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)

	// Profiles
	app.Get("/profile/:id", s.UserProfile)
	app.Get("/edit_profile", s.LoginRequired(), s.EditProfilePage)
	app.Post("/edit_profile", s.LoginRequired(), s.EditProfile)

	// Contact and outbound mail
	app.Get("/send_email", s.SendEmailPage)
	app.Post("/send_email", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "send_email"), s.SendEmail)
	app.Get("/contact", s.Contact)
	app.Post("/contact", s.Contact)

	// Browse
	app.Get("/categories", s.Categories)
	app.Get("/activity", s.Activity)

	// Post CRUD
	app.Get("/create_post", s.LoginRequired(), s.CreatePostPage)
	app.Post("/create_post", s.LoginRequired(), s.CreatePost)
	app.Get("/update_post/:id", s.LoginRequired(), s.UpdatePostPage)
	app.Post("/update_post/:id", s.LoginRequired(), s.UpdatePost)
	app.Get("/delete_post/:id", s.LoginRequired(), s.DeletePostPage)
	app.Post("/delete_post/:id", s.LoginRequired(), s.DeletePost)

	// Comments
	app.Get("/delete_comment/:id", s.LoginRequired(), s.DeleteCommentPage)
	app.Post("/delete_comment/:id", s.LoginRequired(), s.DeleteComment)

	// Post detail + comment submission
	app.Get("/post/:id", s.PostDetail)
	app.Post("/post/:id", s.LoginRequired(), middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.SubmitComment)
}

// LoadSession resolves the session token from the cookie (or Authorization
// header) and stores the user ID in locals. It never rejects a request.
func (s *Server) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			return c.Next()
		}

		userID, err := s.sessions.Get(c.Context(), token)
		if err != nil {
			// Expired or bogus token; treat as anonymous.
			return c.Next()
		}

		// ContextMiddleware runs next and copies userID into the request
		// context for the logger.
		c.Locals("userID", userID)
		c.Locals("sessionToken", token)
		return c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := currentUserID(c); !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
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
		// Sessions fall back to the in-memory store without redis.
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

// Shutdown gracefully releases server resources. It gives up with the
// context's error if the deadline passes before the close calls finish.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)

		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}

		if s.redis != nil {
			if rerr := s.redis.Close(); rerr != nil {
				log.Printf("error closing redis: %v", rerr)
			}
		}
	}()

	select {
	case <-done:
		log.Println("Server shutdown complete")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
