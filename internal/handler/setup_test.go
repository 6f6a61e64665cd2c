package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/circuitfs"
	"github.com/Eigen-OS/eigen-os/internal/config"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/service"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// newPublicTestApp builds the public API surface the way cmd/server
// does: request context middleware, the error chokepoint, and the job
// and device handlers with authentication disabled.
func newPublicTestApp() *fiber.App {
	logger := zap.NewNop()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(logger, false),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(middleware.RequestContext())

	auth := middleware.NewAuthMiddleware(config.AuthConfig{Enabled: false})

	NewJobsHandler(service.NewJobService(), logger).RegisterRoutes(app, auth)
	NewDevicesHandler(service.NewDeviceService(), logger).RegisterRoutes(app, auth)
	NewHealthHandler(nil, nil, "test").RegisterRoutes(app)

	return app
}

// newGatewayTestApp builds the internal gateway surface with a fresh
// store and a temp artifact root. Service tokens are disabled unless a
// secret is supplied.
func newGatewayTestApp(t *testing.T, tokenSecret string) *fiber.App {
	t.Helper()

	logger := zap.NewNop()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(logger, false),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(middleware.RequestContext())

	auth := middleware.NewAuthMiddleware(config.AuthConfig{
		ServiceTokenSecret: tokenSecret,
		ServiceTokenIssuer: "eigen-os",
	})

	store := service.NewJobStore()
	fs := circuitfs.New(t.TempDir())
	kernel := service.NewKernelService(store, fs, logger)

	NewKernelHandler(kernel, logger).RegisterRoutes(app, auth)
	NewDriversHandler(logger).RegisterRoutes(app, auth)
	NewCompilerHandler(logger).RegisterRoutes(app, auth)
	NewHealthHandler(nil, fs, "test").RegisterRoutes(app)

	return app
}

// postJSON performs a JSON POST against the test app.
func postJSON(t *testing.T, app *fiber.App, path string, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

// errorBody mirrors the error envelope for decoding in tests.
type errorBody struct {
	Error struct {
		Code       string                      `json:"code"`
		Message    string                      `json:"message"`
		Violations []validation.FieldViolation `json:"violations"`
	} `json:"error"`
}

// decodeError reads and decodes the error envelope from a response.
func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body), "not an error envelope: %s", raw)
	return body
}

// decodeJSON reads and decodes a success response body.
func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "unexpected body: %s", raw)
}

// violationFieldList projects violations onto their field names.
func violationFieldList(body errorBody) []string {
	fields := make([]string, 0, len(body.Error.Violations))
	for _, v := range body.Error.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}
