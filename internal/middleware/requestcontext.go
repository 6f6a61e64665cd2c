package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Eigen-OS/eigen-os/internal/observability"
)

// RequestContextKey is the locals key holding the derived request context.
const RequestContextKey = "requestContext"

// RequestIDHeader is echoed on every response so callers can correlate
// failures with server logs.
const RequestIDHeader = "X-Request-ID"

// RequestContext derives the observability context for each call and
// stores it in locals. The request id is always generated server-side;
// client-supplied request ids are ignored. trace_id and traceparent
// headers are honored as documented on observability.Derive.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		headers := make(map[string]string)
		for key, values := range c.GetReqHeaders() {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		rc := observability.Derive(headers)
		c.Locals(RequestContextKey, rc)
		c.Set(RequestIDHeader, rc.RequestID)

		return c.Next()
	}
}

// GetRequestContext returns the context derived for this call. A fresh
// context is derived when the middleware did not run, so handlers can
// always log with a request id.
func GetRequestContext(c *fiber.Ctx) observability.RequestContext {
	if rc, ok := c.Locals(RequestContextKey).(observability.RequestContext); ok {
		return rc
	}
	return observability.Derive(nil)
}

// GetRequestID returns the request id derived for this call, or "" when
// the middleware did not run.
func GetRequestID(c *fiber.Ctx) string {
	if rc, ok := c.Locals(RequestContextKey).(observability.RequestContext); ok {
		return rc.RequestID
	}
	return ""
}
