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

	// Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Internal API routes (service token auth)
	deps.KernelHandler.RegisterRoutes(app, deps.Auth)
	deps.DriversHandler.RegisterRoutes(app, deps.Auth)
	deps.CompilerHandler.RegisterRoutes(app, deps.Auth)
}
