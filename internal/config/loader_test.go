package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:50051", cfg.Server.Bind)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "127.0.0.1:50052", cfg.Gateway.Bind)
	assert.False(t, cfg.Auth.Enabled)
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Equal(t, "eigen-os", cfg.Auth.ServiceTokenIssuer)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 600, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "/var/lib/eigen/circuit_fs", cfg.CircuitFS.Root)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_BIND", "127.0.0.1:6000")
	t.Setenv("GATEWAY_BIND", "127.0.0.1:6001")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CIRCUIT_FS_ROOT", "/tmp/circuit_fs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6000", cfg.Server.Bind)
	assert.Equal(t, "127.0.0.1:6001", cfg.Gateway.Bind)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/circuit_fs", cfg.CircuitFS.Root)
	assert.True(t, cfg.IsProduction())
}

func TestSentryEnvironmentFallsBackToServerEnv(t *testing.T) {
	t.Setenv("SERVER_ENV", "staging")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Sentry.Environment)
}

func TestLoadRejectsInvalidBind(t *testing.T) {
	t.Setenv("SERVER_BIND", "not-an-address")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host:port")
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("SERVER_ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestAuthEnabledRequiresKeys(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API keys")
}

func TestAPIKeysParsedFromCSV(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_API_KEYS", "key-one, key-two ,key-three")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"key-one", "key-two", "key-three"}, cfg.Auth.APIKeys)
}
