// Package testutil provides shared test fixtures.
package testutil

import (
	"github.com/Eigen-OS/eigen-os/internal/dto"
)

// SubmitBellPair returns a valid submission with an Eigen-Lang program.
func SubmitBellPair() *dto.SubmitJobRequest {
	return &dto.SubmitJobRequest{
		Name:   "bell-pair",
		Target: "sim:local",
		EigenLang: &dto.EigenLangProgram{
			Entrypoint: "main",
			Source:     "h q[0]; cx q[0], q[1];",
		},
	}
}

// SubmitQASM returns a valid submission with an OpenQASM program.
func SubmitQASM() *dto.SubmitJobRequest {
	return &dto.SubmitJobRequest{
		Name:   "bell-pair",
		Target: "sim:local",
		QASM: &dto.QASMProgram{
			Source:  "OPENQASM 3.0;\nqubit[2] q;\nh q[0];\ncx q[0], q[1];",
			Version: "3.0",
		},
	}
}

// SubmitAQORef returns a valid submission referencing a pre-compiled
// program in QFS.
func SubmitAQORef() *dto.SubmitJobRequest {
	return &dto.SubmitJobRequest{
		Name:   "bell-pair",
		Target: "sim:local",
		AQORef: &dto.AQORef{QFSRef: "/qfs/programs/bell-pair.aqo"},
	}
}
