package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Eigen-OS/eigen-os/internal/validation"
)

// Error codes follow the RPC status vocabulary the services expose.
const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeResourceExhausted = "RESOURCE_EXHAUSTED"
	CodeUnimplemented     = "UNIMPLEMENTED"
	CodeInternal          = "INTERNAL"
)

// AppError represents an application error with context
type AppError struct {
	Code       string                      `json:"code"`
	Message    string                      `json:"message"`
	Violations []validation.FieldViolation `json:"violations,omitempty"`
	StatusCode int                         `json:"-"`
	Err        error                       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// InvalidArgument creates a validation error. Violations may be nil when the
// request was rejected before field checks ran, e.g. an unparseable body.
func InvalidArgument(message string, violations []validation.FieldViolation) *AppError {
	err := New(CodeInvalidArgument, message, http.StatusBadRequest)
	err.Violations = violations
	return err
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Unauthenticated creates an authentication error
func Unauthenticated(message string) *AppError {
	if message == "" {
		message = "unauthenticated"
	}
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

// RateLimited creates a resource exhausted error
func RateLimited() *AppError {
	return New(CodeResourceExhausted, "rate limit exceeded", http.StatusTooManyRequests)
}

// Unimplemented marks an operation that is declared on the service surface
// but not built yet. The operation name is the RPC-style "Service.Method".
func Unimplemented(operation string) *AppError {
	return New(CodeUnimplemented, fmt.Sprintf("%s is not implemented", operation), http.StatusNotImplemented)
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsInvalidArgument checks if the error is a validation error
func IsInvalidArgument(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == CodeInvalidArgument
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsUnauthenticated checks if the error is an authentication error
func IsUnauthenticated(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == CodeUnauthenticated
	}
	return false
}

// IsUnimplemented checks if the error is an unimplemented error
func IsUnimplemented(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == CodeUnimplemented
	}
	return false
}

// IsRateLimited checks if the error is a resource exhausted error
func IsRateLimited(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == CodeResourceExhausted
	}
	return false
}
