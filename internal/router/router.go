package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opsdeck/opsdeck-api/internal/config"
	"github.com/opsdeck/opsdeck-api/internal/handler"
	"github.com/opsdeck/opsdeck-api/internal/middleware"
	"github.com/opsdeck/opsdeck-api/internal/models"
	"github.com/opsdeck/opsdeck-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AdminUserHandler     *handler.AdminUserHandler
	AdminActivityHandler *handler.AdminActivityHandler
	ActivityFeedHandler  *handler.ActivityFeedHandler
	ProjectHandler       *handler.ProjectHandler
	ShopStatusHandler    *handler.ShopStatusHandler
	JWTMiddleware        fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// The two legacy endpoints carry their original wire contracts and do
	// their own caller verification inside the handler.
	if deps.AdminUserHandler != nil {
		app.Post("/api/admin/users", deps.AdminUserHandler.CreateUser)
	}
	if deps.ShopStatusHandler != nil {
		app.Post("/api/admin/shop-status", deps.ShopStatusHandler.Update)
	}

	admin := app.Group("/api/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(admin.Group("/activity"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(admin.Group("/projects"))
	}
	if deps.ShopStatusHandler != nil {
		deps.ShopStatusHandler.Register(admin.Group("/shop-status"))
	}

	if deps.ActivityFeedHandler != nil {
		feed := app.Group("/api/activity", jwtMiddleware, middleware.RateLimit("activity_feed", 60, time.Minute))
		deps.ActivityFeedHandler.Register(feed)
	}
}
