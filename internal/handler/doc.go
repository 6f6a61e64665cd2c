// Package handler contains HTTP request handlers for Eigen-OS.
//
// Handlers are the entry point for HTTP requests, responsible for:
//   - Request parsing and validation
//   - Request context derivation and RPC logging
//   - Calling appropriate services
//   - Response formatting
//
// # Route Organization
//
// Routes are organized by service surface:
//   - /v1/* - Public API routes served by eigen-api (API key authentication)
//   - /internal/v1/* - Gateway routes served by eigen-gateway (service tokens)
//   - /health, /livez, /readyz, /version, /metrics, /docs - operational routes
//
// # Error Handling
//
// Handlers never write error responses themselves. They return errors,
// and the fiber error handler renders every failure as the single
// {"error": {code, message, violations?}} envelope.
//
// # Thread Safety
//
// All handlers are safe for concurrent use.
package handler
