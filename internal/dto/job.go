package dto

import (
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
)

// Program variant names as they appear on the wire.
const (
	ProgramEigenLang = "eigen_lang"
	ProgramQASM      = "qasm"
	ProgramAQORef    = "aqo_ref"
)

// EigenLangProgram is a source-language program payload.
type EigenLangProgram struct {
	Entrypoint string `json:"entrypoint"`
	Source     string `json:"source"`
}

// QASMProgram is an intermediate-representation program payload.
type QASMProgram struct {
	Source  string `json:"source"`
	Version string `json:"version"`
}

// AQORef references a pre-compiled program stored in QFS.
type AQORef struct {
	QFSRef string `json:"qfs_ref"`
}

// SubmitJobRequest submits a new job for execution on a target device.
// Exactly one of the program variants must be set.
type SubmitJobRequest struct {
	Name      string            `json:"name"`
	Target    string            `json:"target"`
	EigenLang *EigenLangProgram `json:"eigen_lang,omitempty"`
	QASM      *QASMProgram      `json:"qasm,omitempty"`
	AQORef    *AQORef           `json:"aqo_ref,omitempty"`
	Shots     int64             `json:"shots,omitempty"`
}

// ProgramVariant reports which program variant is set, and how many are.
// An empty name with count zero means no variant was supplied.
func (r *SubmitJobRequest) ProgramVariant() (name string, count int) {
	if r.EigenLang != nil {
		name = ProgramEigenLang
		count++
	}
	if r.QASM != nil {
		name = ProgramQASM
		count++
	}
	if r.AQORef != nil {
		name = ProgramAQORef
		count++
	}
	if count != 1 {
		name = ""
	}
	return name, count
}

// JobResponse acknowledges a submitted job.
type JobResponse struct {
	JobID  string           `json:"job_id"`
	Status domain.JobStatus `json:"status"`
}

// GetJobStatusRequest looks up the current status of a job.
type GetJobStatusRequest struct {
	JobID string `json:"job_id"`
}

// JobStatusResponse carries the current status of a job.
type JobStatusResponse struct {
	Status domain.JobStatus `json:"status"`
}

// CancelJobRequest requests cancellation of a job.
type CancelJobRequest struct {
	JobID string `json:"job_id"`
}

// CancelJobResponse reports whether the cancellation was accepted.
type CancelJobResponse struct {
	Accepted bool `json:"accepted"`
}

// GetJobResultsRequest retrieves the results of a finished job.
type GetJobResultsRequest struct {
	JobID string `json:"job_id"`
}

// JobResultsResponse carries measurement counts and result metadata.
type JobResultsResponse struct {
	JobID       string            `json:"job_id"`
	State       domain.JobState   `json:"state"`
	Counts      map[string]int64  `json:"counts"`
	Metadata    map[string]string `json:"metadata"`
	CompletedAt time.Time         `json:"completed_at"`
}

// StreamJobUpdatesRequest subscribes to job updates after a last-seen
// sequence number. It is carried in query parameters on the stream route.
type StreamJobUpdatesRequest struct {
	JobID        string `json:"job_id"`
	LastEventSeq int64  `json:"last_event_seq"`
}
