// Package dto contains the wire-level request and response types for the
// Eigen-OS System API and the internal gateway.
//
// Field names follow the platform's RPC contract (snake_case JSON), so a
// payload that is valid against the protobuf surface is valid here too.
//
// # Program variants
//
// SubmitJobRequest carries a oneof-style program payload: exactly one of
// EigenLang, QASM or AQORef may be set. The selected variant is reported by
// ProgramVariant; validation of the variant contents lives in the
// validation package.
//
// DTOs are plain data. Parsing happens in the handler layer so that every
// failure flows through the shared error chokepoint.
package dto
