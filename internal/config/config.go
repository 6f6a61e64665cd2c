package config

import "fmt"

// Config holds all configuration for the Eigen-OS service binaries
type Config struct {
	Server    ServerConfig
	Gateway   GatewayConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	CircuitFS CircuitFSConfig
	Sentry    SentryConfig
	Log       LogConfig
}

// ServerConfig holds the public API server configuration
type ServerConfig struct {
	Bind string `mapstructure:"bind" validate:"required,hostport"`
	Env  string `mapstructure:"env" validate:"required,oneof=development staging production"`
}

// GatewayConfig holds the internal gateway server configuration
type GatewayConfig struct {
	Bind string `mapstructure:"bind" validate:"required,hostport"`
}

// AuthConfig holds API authentication configuration.
//
// The public surface authenticates with static API keys; the internal
// gateway accepts HMAC-signed service tokens. Both are disabled out of
// the box so local development needs no credentials.
type AuthConfig struct {
	Enabled            bool     `mapstructure:"enabled"`
	APIKeys            []string `mapstructure:"api_keys"`
	ServiceTokenSecret string   `mapstructure:"service_token_secret"`
	ServiceTokenIssuer string   `mapstructure:"service_token_issuer"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"gt=0"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CircuitFSConfig holds the artifact store configuration
type CircuitFSConfig struct {
	Root string `mapstructure:"root" validate:"required"`
}

// SentryConfig holds error reporting configuration
type SentryConfig struct {
	DSN              string  `mapstructure:"dsn"`
	Environment      string  `mapstructure:"environment"`
	TracesSampleRate float64 `mapstructure:"traces_sample_rate" validate:"gte=0,lte=1"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// IsDevelopment returns true if running in development mode
func (c Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}
