package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/config"
	"github.com/Eigen-OS/eigen-os/internal/handler"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
)

// Dependencies holds all initialized dependencies for the public API server
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Clients
	Redis *redis.Client

	// Services
	JobService    *service.JobService
	DeviceService *service.DeviceService

	// Middleware
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware

	// Handlers
	JobsHandler    *handler.JobsHandler
	DevicesHandler *handler.DevicesHandler
	HealthHandler  *handler.HealthHandler
	DocsHandler    *handler.DocsHandler
}

// initDependencies initializes all service dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Redis backs the rate limiter only, so skip the connection when
	// rate limiting is disabled.
	if cfg.RateLimit.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisClient, err := initRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		deps.Redis = redisClient
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))

		rateLimitConfig := middleware.DefaultRateLimitConfig()
		rateLimitConfig.Max = cfg.RateLimit.RequestsPerMinute
		deps.RateLimit = middleware.NewRateLimitMiddleware(redisClient, rateLimitConfig)
	}

	// Services
	deps.JobService = service.NewJobService()
	deps.DeviceService = service.NewDeviceService()

	// Middleware
	deps.Auth = middleware.NewAuthMiddleware(cfg.Auth)

	// Handlers
	deps.JobsHandler = handler.NewJobsHandler(deps.JobService, logger)
	deps.DevicesHandler = handler.NewDevicesHandler(deps.DeviceService, logger)
	deps.HealthHandler = handler.NewHealthHandler(deps.Redis, nil, appVersion)
	deps.DocsHandler = handler.NewDocsHandler()

	return deps, nil
}

// Close closes all connections
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("failed to close redis", zap.Error(err))
		}
	}
}

// initRedis initializes the Redis client
func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
