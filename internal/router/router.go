package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/weightlens/weightlens/internal/config"
	"github.com/weightlens/weightlens/internal/handlers"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/middleware"
	"github.com/weightlens/weightlens/internal/services"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, service *services.AnalysisService, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, service)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Dataset Routes
	v1.Post("/dataset/import", h.Import)
	v1.Post("/dataset/reload", h.Reload)
	v1.Get("/dataset/records", h.Records)

	// Analysis Routes
	v1.Get("/analysis/snapshot", h.Snapshot)
	v1.Get("/analysis/regression", h.Regression)
	v1.Get("/analysis/plateaus", h.Plateaus)
	v1.Get("/analysis/trend-changes", h.TrendChanges)
	v1.Get("/analysis/weekly", h.Weekly)

	// Goal Routes
	v1.Get("/goal", h.GetGoal)
	v1.Put("/goal", h.PutGoal)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, service *services.AnalysisService, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "WeightLens Dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, service, cfg)

	return app
}
