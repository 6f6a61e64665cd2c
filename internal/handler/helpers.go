package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/observability"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// beginRPC derives the request context and logs rpc_start. The returned
// function logs the matching rpc_end; call it on the success path only.
// Aborted calls log rpc_start plus the error handler's failure line.
func beginRPC(c *fiber.Ctx, logger *zap.Logger, method string) func() {
	rc := middleware.GetRequestContext(c)
	observability.LogStart(logger, method, rc)
	return func() {
		observability.LogEnd(logger, method, rc)
	}
}

// parseBody decodes the JSON request body into out. A body that does not
// decode aborts the call before any field validation runs.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.InvalidArgument("invalid request body", nil).WithError(err)
	}
	return nil
}

// failValidation records the failure metric and builds the abort error.
func failValidation(method string, violations []validation.FieldViolation) error {
	middleware.RecordValidationFailure(method)
	return apperrors.InvalidArgument("validation failed", violations)
}
