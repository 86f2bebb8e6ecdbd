// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"bookclub/internal/cache"
	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/middleware"
	"bookclub/internal/repository"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	userRepo repository.UserRepository

	groups  *service.GroupService
	posts   *service.PostService
	invites *service.InviteService
	friends *service.FriendService
	notifs  *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps wires a server over already-initialized dependencies.
// Used directly by tests.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	notifs := service.NewNotificationService(notifRepo)
	groups := service.NewGroupService(groupRepo, userRepo)
	posts := service.NewPostService(postRepo, commentRepo, likeRepo, groupRepo, userRepo, notifs, groups.TouchActivity)
	friends := service.NewFriendService(friendRepo, userRepo, notifs)
	invites := service.NewInviteService(inviteRepo, groupRepo, userRepo, friends, groups, notifs)

	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		userRepo: userRepo,
		groups:   groups,
		posts:    posts,
		invites:  invites,
		friends:  friends,
		notifs:   notifs,
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(helmet.New())

	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	prometheus := middleware.InitMetrics("bookclub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

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
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	// Public catalog routes
	groups := api.Group("/groups")
	groups.Get("/", s.ListGroups)
	groups.Get("/featured", s.FeaturedGroups)
	groups.Get("/popular", s.PopularGroups)
	groups.Get("/categories", s.GroupCategories)

	protected := api.Group("", middleware.AuthRequired)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Get("/search", s.SearchUsers)
	users.Get("/:id", s.GetUserProfile)

	pg := protected.Group("/groups")
	pg.Post("/", s.CreateGroup)
	// Specific /:id/:resource routes before the generic /:id route
	pg.Post("/:id/join", s.JoinGroup)
	pg.Post("/:id/leave", s.LeaveGroup)
	pg.Put("/:id/images", s.UpdateGroupImages)
	pg.Post("/:id/promote/:userId", s.PromoteMember)
	pg.Post("/:id/demote/:userId", s.DemoteMember)
	pg.Delete("/:id/members/:userId", s.RemoveMember)
	pg.Post("/:id/invitations", s.InviteToGroup)
	pg.Post("/:id/invitations/:invitationId/accept", s.AcceptInvitation)
	pg.Post("/:id/invitations/:invitationId/decline", s.DeclineInvitation)
	pg.Get("/:id/posts", s.ListPosts)
	pg.Get("/:id/posts/pinned", s.ListPinnedPosts)
	pg.Post("/:id/posts", s.CreatePost)
	pg.Get("/:id", s.GetGroup)

	posts := protected.Group("/posts")
	posts.Post("/:id/comments", s.AddComment)
	posts.Delete("/:id/comments/:commentId", s.DeleteComment)
	posts.Post("/:id/replies/:targetId", s.AddReply)
	posts.Delete("/:id/replies/:replyId", s.DeleteReply)
	posts.Post("/:id/pin", s.PinPost)
	posts.Delete("/:id/pin", s.UnpinPost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	likes := protected.Group("/likes")
	likes.Post("/:targetType/:targetId", s.ToggleLike)

	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Post("/requests/:userId", s.SendFriendRequest)
	friends.Post("/requests/:requestId/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:requestId/reject", s.RejectFriendRequest)

	notifications := protected.Group("/notifications")
	notifications.Get("/", s.ListNotifications)
	notifications.Get("/unread-count", s.UnreadCount)
	notifications.Post("/read-all", s.MarkAllNotificationsRead)
	notifications.Post("/:id/read", s.MarkNotificationRead)
}

// Shutdown closes pooled resources held by the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "bookclub",
		"version": "1.0.0",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
