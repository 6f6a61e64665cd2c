package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/Eigen-OS/eigen-os/internal/circuitfs"
	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/dto"
	"github.com/Eigen-OS/eigen-os/internal/lifecycle"
	"github.com/Eigen-OS/eigen-os/internal/middleware"
	apperrors "github.com/Eigen-OS/eigen-os/internal/pkg/errors"
)

const defaultStepDelay = 50 * time.Millisecond

// KernelService runs the kernel gateway's minimal job pipeline. Every
// accepted job is driven through COMPILING, QUEUED and RUNNING to DONE
// by a background goroutine, with one fixed delay per stage. Results
// and logs are persisted to the circuit filesystem.
type KernelService struct {
	store     *JobStore
	fs        *circuitfs.CircuitFS
	logger    *zap.Logger
	stepDelay time.Duration
}

// NewKernelService creates a kernel service backed by the given store
// and circuit filesystem.
func NewKernelService(store *JobStore, fs *circuitfs.CircuitFS, logger *zap.Logger) *KernelService {
	return &KernelService{
		store:     store,
		fs:        fs,
		logger:    logger,
		stepDelay: defaultStepDelay,
	}
}

// EnqueueJob accepts a job into the kernel and starts its pipeline.
// The request is validated by the handler before it reaches here.
func (s *KernelService) EnqueueJob(ctx context.Context, req *dto.EnqueueJobRequest) *dto.EnqueueJobResponse {
	record := s.store.Create(req.Name)
	middleware.RecordKernelJobEnqueued()

	// Program payloads arrive in a later phase; store the job manifest
	// so the input slot of the layout is populated.
	jobYAML := "name: " + record.Name + "\n"
	if err := s.fs.StoreSourceBundle(record.JobID, jobYAML, nil); err != nil {
		s.logger.Warn("circuit_fs source write failed",
			zap.String("job_id", record.JobID),
			zap.Error(err))
	}

	go s.runPipeline(record.JobID)

	return &dto.EnqueueJobResponse{
		JobID:     record.JobID,
		State:     record.State,
		CreatedAt: record.CreatedAt,
	}
}

// GetJobStatus reports the kernel's view of a job.
func (s *KernelService) GetJobStatus(ctx context.Context, jobID string) (*dto.KernelJobStatusResponse, error) {
	record, ok := s.store.Get(jobID)
	if !ok {
		return nil, apperrors.NotFound("job")
	}

	return &dto.KernelJobStatusResponse{
		JobID:           record.JobID,
		State:           record.State,
		Stage:           string(record.State),
		Progress:        lifecycle.Progress(record.State),
		Message:         "",
		ErrorCode:       record.ErrorCode,
		ErrorSummary:    record.ErrorSummary,
		ErrorDetailsRef: record.ErrorDetailsRef,
		UpdatedAt:       record.UpdatedAt,
	}, nil
}

// CancelJob requests cancellation of a job. Jobs already in a terminal
// state report accepted=false rather than an error.
func (s *KernelService) CancelJob(ctx context.Context, jobID string) (*dto.CancelJobResponse, error) {
	record, ok := s.store.Get(jobID)
	if !ok {
		return nil, apperrors.NotFound("job")
	}

	if record.State.IsTerminal() {
		return &dto.CancelJobResponse{Accepted: false}, nil
	}

	if _, err := s.store.ApplyEvent(jobID, lifecycle.EventCancel); err != nil {
		// Lost the race against the pipeline's final transition.
		return &dto.CancelJobResponse{Accepted: false}, nil
	}
	middleware.RecordKernelTransition(string(lifecycle.EventCancel))
	s.appendLog(jobID, "cancelled")

	return &dto.CancelJobResponse{Accepted: true}, nil
}

// GetJobResults returns counts and error details for a job. CompletedAt
// is set only once the job has finished successfully.
func (s *KernelService) GetJobResults(ctx context.Context, jobID string) (*dto.KernelJobResultsResponse, error) {
	record, ok := s.store.Get(jobID)
	if !ok {
		return nil, apperrors.NotFound("job")
	}

	resp := &dto.KernelJobResultsResponse{
		JobID:           record.JobID,
		State:           record.State,
		Counts:          record.Counts,
		Metadata:        map[string]string{},
		ErrorCode:       record.ErrorCode,
		ErrorSummary:    record.ErrorSummary,
		ErrorDetailsRef: record.ErrorDetailsRef,
	}
	if record.Counts == nil {
		resp.Counts = map[string]int64{}
	}
	if record.State == domain.JobStateDone {
		completed := record.UpdatedAt
		resp.CompletedAt = &completed
	}
	return resp, nil
}

// runPipeline drives one job through the happy path. Each step applies
// a lifecycle event and sleeps; a failed transition (the job was
// cancelled underneath us) stops the pipeline silently.
func (s *KernelService) runPipeline(jobID string) {
	steps := []lifecycle.Event{
		lifecycle.EventStartCompiling,
		lifecycle.EventFinishCompiling,
		lifecycle.EventStartRunning,
		lifecycle.EventFinishRunningOk,
	}

	for i, event := range steps {
		if i > 0 {
			time.Sleep(s.stepDelay)
		}
		record, err := s.store.ApplyEvent(jobID, event)
		if err != nil {
			return
		}
		middleware.RecordKernelTransition(string(event))
		s.appendLog(jobID, "state="+string(record.State))
		s.logger.Debug("kernel transition",
			zap.String("job_id", jobID),
			zap.String("event", string(event)),
			zap.String("state", string(record.State)))
	}

	counts := map[string]int64{"0": 0}
	s.store.SetCounts(jobID, counts)
	s.persistResults(jobID, counts)
}

// persistResults writes the results bundle for a finished job.
func (s *KernelService) persistResults(jobID string, counts map[string]int64) {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		s.logger.Warn("results encode failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return
	}
	metadataJSON, _ := json.Marshal(map[string]string{})

	if err := s.fs.StoreResultsBundle(jobID, countsJSON, metadataJSON); err != nil {
		s.logger.Warn("circuit_fs results write failed",
			zap.String("job_id", jobID),
			zap.Error(err))
	}
}

// appendLog best-effort appends one line to the job's kernel log.
func (s *KernelService) appendLog(jobID, line string) {
	if err := s.fs.AppendLogLine(jobID, "kernel", line); err != nil {
		s.logger.Debug("circuit_fs log append failed",
			zap.String("job_id", jobID),
			zap.Error(err))
	}
}
