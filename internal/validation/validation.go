package validation

import (
	"github.com/Eigen-OS/eigen-os/internal/dto"
)

// FieldViolation describes one invalid input field. Violations are
// machine-readable: clients match on Field, humans read Description.
type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// RequiredString yields one violation if value is empty, nothing otherwise.
// Only emptiness is checked; whitespace-only values pass.
func RequiredString(value, field string) []FieldViolation {
	if value == "" {
		return []FieldViolation{{Field: field, Description: "field is required"}}
	}
	return nil
}

// PositiveInt yields one violation if value is zero or negative.
func PositiveInt(value int64, field string) []FieldViolation {
	if value <= 0 {
		return []FieldViolation{{Field: field, Description: "must be > 0"}}
	}
	return nil
}

// SubmitJob checks a job submission. All sub-checks run eagerly so every
// violation on the request is reported together.
func SubmitJob(req *dto.SubmitJobRequest) []FieldViolation {
	var violations []FieldViolation

	violations = append(violations, RequiredString(req.Name, "name")...)
	violations = append(violations, RequiredString(req.Target, "target")...)

	variant, count := req.ProgramVariant()
	switch {
	case count == 0:
		violations = append(violations, FieldViolation{Field: "program", Description: "oneof program is required"})
	case count > 1:
		violations = append(violations, FieldViolation{Field: "program", Description: "exactly one program variant must be set"})
	default:
		switch variant {
		case dto.ProgramEigenLang:
			violations = append(violations, RequiredString(req.EigenLang.Entrypoint, "eigen_lang.entrypoint")...)
			if req.EigenLang.Source == "" {
				violations = append(violations, FieldViolation{Field: "eigen_lang.source", Description: "source must be non-empty"})
			}
		case dto.ProgramQASM:
			if req.QASM.Source == "" {
				violations = append(violations, FieldViolation{Field: "qasm.source", Description: "source must be non-empty"})
			}
			violations = append(violations, RequiredString(req.QASM.Version, "qasm.version")...)
		case dto.ProgramAQORef:
			violations = append(violations, RequiredString(req.AQORef.QFSRef, "aqo_ref.qfs_ref")...)
		}
	}

	return violations
}

// JobID checks a lookup-by-id request on the job_id field.
func JobID(id string) []FieldViolation {
	return RequiredString(id, "job_id")
}

// DeviceID checks a lookup-by-id request on the device_id field.
func DeviceID(id string) []FieldViolation {
	return RequiredString(id, "device_id")
}

// ReserveDevice checks a device reservation request.
func ReserveDevice(req *dto.ReserveDeviceRequest) []FieldViolation {
	var violations []FieldViolation
	violations = append(violations, RequiredString(req.DeviceID, "device_id")...)
	violations = append(violations, PositiveInt(req.TTLSeconds, "ttl_seconds")...)
	return violations
}
