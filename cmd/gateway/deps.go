package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/circuitfs"
	"github.com/Eigen-OS/eigen-os/internal/config"
	"github.com/Eigen-OS/eigen-os/internal/handler"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
)

// Dependencies holds all initialized dependencies for the kernel gateway
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Storage
	CircuitFS *circuitfs.CircuitFS

	// Services
	JobStore      *service.JobStore
	KernelService *service.KernelService

	// Middleware
	Auth *middleware.AuthMiddleware

	// Handlers
	KernelHandler   *handler.KernelHandler
	DriversHandler  *handler.DriversHandler
	CompilerHandler *handler.CompilerHandler
	HealthHandler   *handler.HealthHandler
}

// initDependencies initializes all gateway dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Artifact store root must exist before the first job lands.
	if err := os.MkdirAll(cfg.CircuitFS.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create circuit_fs root %s: %w", cfg.CircuitFS.Root, err)
	}
	deps.CircuitFS = circuitfs.New(cfg.CircuitFS.Root)
	logger.Info("circuit_fs ready", zap.String("root", cfg.CircuitFS.Root))

	// Services
	deps.JobStore = service.NewJobStore()
	deps.KernelService = service.NewKernelService(deps.JobStore, deps.CircuitFS, logger)

	// Middleware
	deps.Auth = middleware.NewAuthMiddleware(cfg.Auth)

	// Handlers
	deps.KernelHandler = handler.NewKernelHandler(deps.KernelService, logger)
	deps.DriversHandler = handler.NewDriversHandler(logger)
	deps.CompilerHandler = handler.NewCompilerHandler(logger)
	deps.HealthHandler = handler.NewHealthHandler(nil, deps.CircuitFS, appVersion)

	return deps, nil
}
