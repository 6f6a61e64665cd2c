package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eigen_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eigen_http_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"method"},
	)

	// Job metrics
	jobsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_jobs_submitted_total",
			Help: "Total number of jobs accepted by the public API",
		},
		[]string{"target"},
	)

	jobStreamEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_job_stream_events_total",
			Help: "Total number of job update events streamed to clients",
		},
		[]string{"state"},
	)

	deviceReservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_device_reservations_total",
			Help: "Total number of device reservations issued",
		},
		[]string{"device_id"},
	)

	// Kernel metrics
	kernelJobsEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eigen_kernel_jobs_enqueued_total",
			Help: "Total number of jobs enqueued on the kernel gateway",
		},
	)

	kernelTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_kernel_transitions_total",
			Help: "Total number of lifecycle transitions applied by the kernel",
		},
		[]string{"event"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eigen_validation_failures_total",
			Help: "Total number of requests rejected by validation",
		},
		[]string{"method"},
	)
)

// MetricsConfig configures the metrics middleware
type MetricsConfig struct {
	// Skip function
	Skip func(*fiber.Ctx) bool
	// PathNormalizer normalizes paths for metrics labels
	PathNormalizer func(string) string
}

// DefaultMetricsConfig returns default metrics config
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Skip:           HealthSkipper,
		PathNormalizer: DefaultPathNormalizer,
	}
}

// DefaultPathNormalizer normalizes paths for metrics labels. Routes carry
// ids in request bodies, not paths, so the path is already low-cardinality.
func DefaultPathNormalizer(path string) string {
	return path
}

// MetricsMiddleware creates a Prometheus metrics middleware
type MetricsMiddleware struct {
	config MetricsConfig
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(config MetricsConfig) *MetricsMiddleware {
	return &MetricsMiddleware{
		config: config,
	}
}

// Handler returns the metrics handler
func (m *MetricsMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Skip if configured
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()
		path := m.config.PathNormalizer(c.Path())

		// Track active requests
		httpActiveRequests.WithLabelValues(method).Inc()
		defer httpActiveRequests.WithLabelValues(method).Dec()

		// Process request
		err := c.Next()

		// Record metrics
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// RecordJobSubmitted records a job accepted by the public API
func RecordJobSubmitted(target string) {
	jobsSubmitted.WithLabelValues(target).Inc()
}

// RecordJobStreamEvent records one streamed job update event
func RecordJobStreamEvent(state string) {
	jobStreamEvents.WithLabelValues(state).Inc()
}

// RecordDeviceReservation records an issued device reservation
func RecordDeviceReservation(deviceID string) {
	deviceReservations.WithLabelValues(deviceID).Inc()
}

// RecordKernelJobEnqueued records a job enqueued on the kernel gateway
func RecordKernelJobEnqueued() {
	kernelJobsEnqueued.Inc()
}

// RecordKernelTransition records an applied lifecycle transition
func RecordKernelTransition(event string) {
	kernelTransitions.WithLabelValues(event).Inc()
}

// RecordValidationFailure records a request rejected by validation
func RecordValidationFailure(method string) {
	validationFailures.WithLabelValues(method).Inc()
}

// HealthSkipper skips instrumentation for health check endpoints
func HealthSkipper(c *fiber.Ctx) bool {
	path := c.Path()
	return path == "/health" || path == "/healthz" || path == "/ready" || path == "/readyz" || path == "/live" || path == "/livez"
}

// CombinedSkipper combines multiple skippers
func CombinedSkipper(skippers ...func(*fiber.Ctx) bool) func(*fiber.Ctx) bool {
	return func(c *fiber.Ctx) bool {
		for _, skip := range skippers {
			if skip(c) {
				return true
			}
		}
		return false
	}
}
