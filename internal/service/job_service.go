package service

import (
	"context"
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	"github.com/Eigen-OS/eigen-os/internal/pkg/id"
)

// defaultStreamDelay spaces out streamed updates so clients can observe
// streaming behavior locally.
const defaultStreamDelay = 50 * time.Millisecond

// JobService implements the public job operations. Responses are
// deterministic placeholders: jobs are not handed to an execution
// backend yet, but the request contract, validation and streaming
// behavior match what the real pipeline will serve.
type JobService struct {
	streamDelay time.Duration
}

// NewJobService creates a new job service
func NewJobService() *JobService {
	return &JobService{streamDelay: defaultStreamDelay}
}

// SubmitJob accepts a validated submission and returns its queued status.
func (s *JobService) SubmitJob(ctx context.Context, req *dto.SubmitJobRequest) *dto.JobResponse {
	jobID := id.NewJobID()
	now := time.Now().UTC()

	middleware.RecordJobSubmitted(req.Target)

	return &dto.JobResponse{
		JobID: jobID,
		Status: domain.JobStatus{
			JobID:     jobID,
			State:     domain.JobStateQueued,
			Stage:     "QUEUED",
			Progress:  0.0,
			Message:   "accepted (stub)",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// GetJobStatus returns the placeholder status for a job.
func (s *JobService) GetJobStatus(ctx context.Context, jobID string) *dto.JobStatusResponse {
	now := time.Now().UTC()

	return &dto.JobStatusResponse{
		Status: domain.JobStatus{
			JobID:     jobID,
			State:     domain.JobStateQueued,
			Stage:     "QUEUED",
			Progress:  0.0,
			Message:   "stub status",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// CancelJob acknowledges a cancellation request.
func (s *JobService) CancelJob(ctx context.Context, jobID string) *dto.CancelJobResponse {
	return &dto.CancelJobResponse{Accepted: true}
}

// GetJobResults returns placeholder measurement counts for a job.
func (s *JobService) GetJobResults(ctx context.Context, jobID string) *dto.JobResultsResponse {
	return &dto.JobResultsResponse{
		JobID:       jobID,
		State:       domain.JobStateDone,
		Counts:      map[string]int64{"00": 512, "11": 512},
		Metadata:    map[string]string{"stub": "true"},
		CompletedAt: time.Now().UTC(),
	}
}

// StreamUpdates emits a short ordered sequence of job updates and closes
// the channel. Sequence numbers resume after lastEventSeq so clients can
// reconnect without re-reading events; the first sequence number is
// never below 1.
func (s *JobService) StreamUpdates(ctx context.Context, jobID string, lastEventSeq int64) <-chan domain.JobUpdate {
	updates := make(chan domain.JobUpdate)

	seq := lastEventSeq + 1
	if seq < 1 {
		seq = 1
	}

	go func() {
		defer close(updates)

		first := domain.JobUpdate{
			JobID:     jobID,
			State:     domain.JobStateQueued,
			Stage:     "QUEUED",
			Progress:  0.0,
			Message:   "queued (stub)",
			EventSeq:  seq,
			Timestamp: time.Now().UTC(),
		}
		select {
		case updates <- first:
			middleware.RecordJobStreamEvent(string(first.State))
		case <-ctx.Done():
			return
		}

		select {
		case <-time.After(s.streamDelay):
		case <-ctx.Done():
			return
		}

		second := domain.JobUpdate{
			JobID:     jobID,
			State:     domain.JobStateDone,
			Stage:     "DONE",
			Progress:  1.0,
			Message:   "done (stub)",
			EventSeq:  seq + 1,
			Timestamp: time.Now().UTC(),
		}
		select {
		case updates <- second:
			middleware.RecordJobStreamEvent(string(second.State))
		case <-ctx.Done():
		}
	}()

	return updates
}
