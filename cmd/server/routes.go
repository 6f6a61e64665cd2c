package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Health check routes (no auth required)
	deps.HealthHandler.RegisterRoutes(app)

	// API Documentation routes (no auth required)
	deps.DocsHandler.RegisterRoutes(app)

	// Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public API routes (API key auth)
	deps.JobsHandler.RegisterRoutes(app, deps.Auth)
	deps.DevicesHandler.RegisterRoutes(app, deps.Auth)
}
