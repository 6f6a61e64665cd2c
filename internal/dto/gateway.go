package dto

import (
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
)

// Internal gateway contract (KernelGateway). The gateway serves System API
// instances only and is never exposed publicly.

// EnqueueJobRequest hands a validated job to the kernel.
type EnqueueJobRequest struct {
	Name string `json:"name"`
}

// EnqueueJobResponse acknowledges an enqueued job.
type EnqueueJobResponse struct {
	JobID     string          `json:"job_id"`
	State     domain.JobState `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
}

// KernelJobStatusResponse carries the kernel's view of a job, including
// structured error fields for failed jobs.
type KernelJobStatusResponse struct {
	JobID           string          `json:"job_id"`
	State           domain.JobState `json:"state"`
	Stage           string          `json:"stage"`
	Progress        float64         `json:"progress"`
	Message         string          `json:"message"`
	ErrorCode       string          `json:"error_code,omitempty"`
	ErrorSummary    string          `json:"error_summary,omitempty"`
	ErrorDetailsRef string          `json:"error_details_ref,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// KernelJobResultsResponse carries results from the kernel's job store.
type KernelJobResultsResponse struct {
	JobID           string            `json:"job_id"`
	State           domain.JobState   `json:"state"`
	Counts          map[string]int64  `json:"counts"`
	Metadata        map[string]string `json:"metadata"`
	ErrorCode       string            `json:"error_code,omitempty"`
	ErrorSummary    string            `json:"error_summary,omitempty"`
	ErrorDetailsRef string            `json:"error_details_ref,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}
