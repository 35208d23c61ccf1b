package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/seedit-social/backend/internal/notify"
	"github.com/seedit-social/backend/internal/notify/channel"
	"github.com/seedit-social/backend/internal/repositories"
	"github.com/seedit-social/backend/internal/router"
	"github.com/seedit-social/backend/pkg/config"
	"github.com/seedit-social/backend/pkg/firebase"
	"github.com/seedit-social/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// --- Repositories, shared by handlers and the notification pipeline ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	outboxRepo := repositories.NewPostgresOutboxRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database("seedit"))
	tagRepo := repositories.NewMongoTagRepository(db.Mongo.Database("seedit"))

	resolver := notify.NewResolver(userRepo, postRepo, tagRepo, followRepo)
	notifier := notify.NewService(resolver, userRepo, followRepo, notificationRepo, outboxRepo)

	channels := []channel.Channel{
		channel.NewPushChannel(firebaseApp.MessagingClient),
		channel.NewMailChannel(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom),
		channel.NewSmsChannel(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom),
	}
	worker := notify.NewWorker(outboxRepo, channels, cfg.OutboxInterval, cfg.OutboxBatch)
	go worker.Start(ctx)
	log.Println("Notification delivery worker started.")

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, router.Repositories{
		Users:         userRepo,
		Follows:       followRepo,
		Notifications: notificationRepo,
		Posts:         postRepo,
		Tags:          tagRepo,
	}, firebaseApp.AuthClient, notifier)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
