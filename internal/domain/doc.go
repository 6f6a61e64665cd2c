// Package domain contains the core value types for the Eigen-OS System API.
//
// This package defines:
//   - Job lifecycle types (JobStatus, JobUpdate, JobResults)
//   - Device catalog types (DeviceInfo)
//   - Wire enums (JobState, DeviceStatus)
//
// Domain types are transport-agnostic: the same values travel over the
// public API, the internal gateway and the update stream. Enum values are
// the upper-case strings of the platform's RPC contract.
package domain
