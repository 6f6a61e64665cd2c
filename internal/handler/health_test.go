package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eigen-OS/eigen-os/internal/circuitfs"
)

func newHealthTestApp(handler *HealthHandler) *fiber.App {
	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func TestHealth(t *testing.T) {
	t.Run("healthy with no dependencies", func(t *testing.T) {
		app := newHealthTestApp(NewHealthHandler(nil, nil, "1.2.3"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body HealthStatus
		decodeJSON(t, resp, &body)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "1.2.3", body.Version)
		assert.Empty(t, body.Checks)
	})

	t.Run("healthy artifact store", func(t *testing.T) {
		fs := circuitfs.New(t.TempDir())
		app := newHealthTestApp(NewHealthHandler(nil, fs, "1.2.3"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body HealthStatus
		decodeJSON(t, resp, &body)
		assert.Equal(t, "healthy", body.Checks["circuit_fs"])
	})

	t.Run("missing artifact root is unhealthy", func(t *testing.T) {
		fs := circuitfs.New(filepath.Join(t.TempDir(), "missing"))
		app := newHealthTestApp(NewHealthHandler(nil, fs, "1.2.3"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestReadiness(t *testing.T) {
	t.Run("ready with no dependencies", func(t *testing.T) {
		app := newHealthTestApp(NewHealthHandler(nil, nil, "1.2.3"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not ready when the artifact root is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "root")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		app := newHealthTestApp(NewHealthHandler(nil, circuitfs.New(path), "1.2.3"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLiveness(t *testing.T) {
	app := newHealthTestApp(NewHealthHandler(nil, nil, "1.2.3"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVersion(t *testing.T) {
	app := newHealthTestApp(NewHealthHandler(nil, nil, "9.9.9"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "9.9.9", body["version"])
	assert.NotEmpty(t, body["uptime"])
}
