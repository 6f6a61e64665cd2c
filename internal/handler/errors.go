package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/middleware"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
)

// errorEnvelope is the single wire shape for failures.
type errorEnvelope struct {
	Error *apperrors.AppError `json:"error"`
}

// ErrorHandler renders every failure through one chokepoint. Handlers
// and middleware return errors instead of writing responses; this is
// the only place a failure body is produced.
func ErrorHandler(logger *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := apperrors.GetAppError(err)
		if appErr == nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				appErr = fromFiberError(fiberErr)
			} else {
				appErr = apperrors.Internal("internal server error").WithError(err)
			}
		}

		rc := middleware.GetRequestContext(c)
		fields := append(rc.Fields(),
			zap.String("method", c.Method()+" "+c.Path()),
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.StatusCode),
		)

		if appErr.StatusCode >= fiber.StatusInternalServerError {
			fields = append(fields, zap.Error(err))
			logger.Error("rpc_failed", fields...)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		} else {
			logger.Warn("rpc_failed", fields...)
		}

		return c.Status(appErr.StatusCode).JSON(errorEnvelope{Error: appErr})
	}
}

// fromFiberError maps fiber's own errors (unknown route, oversized
// body) onto the envelope vocabulary.
func fromFiberError(err *fiber.Error) *apperrors.AppError {
	switch {
	case err.Code == fiber.StatusNotFound:
		return apperrors.New(apperrors.CodeNotFound, err.Message, err.Code)
	case err.Code == fiber.StatusUnauthorized:
		return apperrors.New(apperrors.CodeUnauthenticated, err.Message, err.Code)
	case err.Code == fiber.StatusTooManyRequests:
		return apperrors.New(apperrors.CodeResourceExhausted, err.Message, err.Code)
	case err.Code >= fiber.StatusInternalServerError:
		return apperrors.New(apperrors.CodeInternal, err.Message, err.Code)
	default:
		return apperrors.New(apperrors.CodeInvalidArgument, err.Message, err.Code)
	}
}
