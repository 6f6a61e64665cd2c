// Package errors provides application error types for Eigen-OS services.
//
// This package defines:
//   - AppError type carrying an RPC status code and optional field violations
//   - Error constructors for each status the services emit
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Codes
//
//   - InvalidArgument: Request failed validation (400), carries violations
//   - NotFound: Resource does not exist (404)
//   - Unauthenticated: Missing or bad credentials (401)
//   - ResourceExhausted: Rate limit exceeded (429)
//   - Unimplemented: Operation is declared but not built yet (501)
//   - Internal: Unexpected server error (500)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.InvalidArgument("invalid request", violations)
//	return apperrors.Unimplemented("DriverManagerService.ExecuteCircuit")
//
// Check error types:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
//
// # Error Wrapping
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("reservation failed: %w", apperrors.NotFound("device"))
package errors
