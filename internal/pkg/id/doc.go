// Package id provides identifier generation for Eigen-OS services.
//
// This package generates:
//   - Job identifiers ("job_" + 12 hex characters)
//   - Reservation identifiers ("rsv_" + 12 hex characters)
//   - UUID v4 identifiers for kernel-side jobs
//
// All functions are safe for concurrent use.
//
// # Prefixes
//
// Identifiers carry prefixes so operators can tell resource kinds apart
// in logs at a glance:
//   - job_* : jobs on the public API surface
//   - rsv_* : device reservations
package id
