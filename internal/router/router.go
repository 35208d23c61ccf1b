package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/seedit-social/backend/internal/handlers"
	"github.com/seedit-social/backend/internal/middleware"
	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify"
	"github.com/seedit-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// Repositories bundles the data stores shared by the handlers and the
// notification pipeline. Built once in main.
type Repositories struct {
	Users         repositories.UserRepository
	Follows       repositories.FollowRepository
	Notifications repositories.NotificationRepository
	Posts         repositories.PostRepository
	Tags          repositories.TagRepository
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, repos Repositories, firebaseAuthClient *auth.Client, notifier *notify.Service) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Follow{},
		&models.Notification{},
		&models.Outbox{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(repos.Users, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(repos.Users)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(repos.Posts, repos.Users, repos.Tags, repos.Follows, notifier)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(repos.Follows, repos.Users, notifier)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Tag routes
	tagHandler := handlers.NewTagHandler(repos.Tags)
	tagHandler.RegisterTagRoutes(api)
	log.Println("Tag routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(repos.Notifications, repos.Users)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
