package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opsdeck/opsdeck-api/internal/config"
	"github.com/opsdeck/opsdeck-api/internal/database"
	"github.com/opsdeck/opsdeck-api/internal/handler"
	"github.com/opsdeck/opsdeck-api/internal/middleware"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/repository"
	"github.com/opsdeck/opsdeck-api/internal/router"
	"github.com/opsdeck/opsdeck-api/internal/service"
	"github.com/opsdeck/opsdeck-api/pkg/discord"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.ShopStatus{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	notifier, err := discord.New(discord.Config{
		WebhookURL: cfg.DiscordWebhookURL,
		Timeout:    cfg.WebhookTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create discord notifier: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	shopStatusRepo := repository.NewShopStatusRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	feedService := service.NewActivityFeedService(activityRepo, redisClient, cfg.FeedCacheTTL, logger)
	adminUserService := service.NewAdminUserService(userRepo, validate, activityService, logger)
	projectService := service.NewProjectService(projectRepo, validate, activityService, logger)
	shopStatusService := service.NewShopStatusService(shopStatusRepo, notifier, validate, activityService, logger)

	adminUserHandler := handler.NewAdminUserHandler(adminUserService, cfg.JWTSecret, logger)
	adminActivityHandler := handler.NewAdminActivityHandler(activityService, logger)
	feedHandler := handler.NewActivityFeedHandler(feedService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	shopStatusHandler := handler.NewShopStatusHandler(shopStatusService, adminUserService, cfg.JWTSecret, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AdminUserHandler:     adminUserHandler,
		AdminActivityHandler: adminActivityHandler,
		ActivityFeedHandler:  feedHandler,
		ProjectHandler:       projectHandler,
		ShopStatusHandler:    shopStatusHandler,
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
