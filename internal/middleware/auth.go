package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Eigen-OS/eigen-os/internal/config"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
)

// ContextKey type for context keys
type ContextKey string

const (
	// Context keys
	ContextKeyAuthType ContextKey = "authType"
	ContextKeyService  ContextKey = "serviceName"
)

// AuthType represents the type of authentication used
type AuthType string

const (
	AuthTypeAPIKey       AuthType = "api_key"
	AuthTypeServiceToken AuthType = "service_token"
)

// AuthMiddleware handles authentication for the public API and the
// internal gateway.
type AuthMiddleware struct {
	cfg config.AuthConfig

	// keyHashes holds SHA-256 digests of the configured API keys so
	// comparisons run in constant time over fixed-length values.
	keyHashes [][32]byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	m := &AuthMiddleware{cfg: cfg}
	for _, key := range cfg.APIKeys {
		m.keyHashes = append(m.keyHashes, sha256.Sum256([]byte(key)))
	}
	return m
}

// RequireAPIKey validates API key authentication on the public surface.
// When auth is disabled in config the middleware passes every request
// through, so local development needs no credentials.
func (m *AuthMiddleware) RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled {
			return c.Next()
		}

		apiKey := extractAPIKey(c)
		if apiKey == "" {
			return apperrors.Unauthenticated("API key required")
		}

		if !m.validKey(apiKey) {
			return apperrors.Unauthenticated("invalid API key")
		}

		c.Locals(string(ContextKeyAuthType), AuthTypeAPIKey)
		return c.Next()
	}
}

// RequireServiceToken validates HMAC-signed service tokens on the
// internal gateway. When no secret is configured the middleware passes
// requests through; the gateway binds to loopback by default.
func (m *AuthMiddleware) RequireServiceToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.cfg.ServiceTokenSecret == "" {
			return c.Next()
		}

		token := extractBearerToken(c)
		if token == "" {
			return apperrors.Unauthenticated("service token required")
		}

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims,
			func(t *jwt.Token) (interface{}, error) {
				return []byte(m.cfg.ServiceTokenSecret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithIssuer(m.cfg.ServiceTokenIssuer),
		)
		if err != nil || !parsed.Valid {
			return apperrors.Unauthenticated("invalid or expired service token")
		}

		c.Locals(string(ContextKeyAuthType), AuthTypeServiceToken)
		c.Locals(string(ContextKeyService), claims.Subject)
		return c.Next()
	}
}

// IssueServiceToken mints a service token for calls to the internal
// gateway. Subject names the calling service.
func IssueServiceToken(secret, issuer, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (m *AuthMiddleware) validKey(apiKey string) bool {
	digest := sha256.Sum256([]byte(apiKey))
	for i := range m.keyHashes {
		if subtle.ConstantTimeCompare(m.keyHashes[i][:], digest[:]) == 1 {
			return true
		}
	}
	return false
}

// extractAPIKey extracts API key from request
func extractAPIKey(c *fiber.Ctx) string {
	// Check X-API-Key header first
	if apiKey := c.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}

	// Check Authorization header with Bearer prefix
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}

// extractBearerToken extracts a token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// GetAuthType gets the authentication type from context
func GetAuthType(c *fiber.Ctx) (AuthType, bool) {
	authType, ok := c.Locals(string(ContextKeyAuthType)).(AuthType)
	return authType, ok
}

// GetServiceName gets the calling service name from context
func GetServiceName(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals(string(ContextKeyService)).(string)
	return name, ok
}
