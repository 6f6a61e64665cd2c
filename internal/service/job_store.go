package service

import (
	"errors"
	"sync"
	"time"

	"github.com/Eigen-OS/eigen-os/internal/domain"
	"github.com/Eigen-OS/eigen-os/internal/lifecycle"
	"github.com/Eigen-OS/eigen-os/internal/pkg/id"
)

// ErrJobNotFound is returned when a job id has no record in the store.
var ErrJobNotFound = errors.New("job not found")

// JobRecord is a stored kernel job.
type JobRecord struct {
	JobID           string
	Name            string
	State           domain.JobState
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ErrorCode       string
	ErrorSummary    string
	ErrorDetailsRef string
	Counts          map[string]int64
}

// JobStore is the in-memory kernel job store. Artifacts live in the
// circuit filesystem; the store holds only live pipeline state.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*JobRecord
}

// NewJobStore creates an empty job store
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*JobRecord)}
}

// Create inserts a new pending job and returns its record.
func (s *JobStore) Create(name string) JobRecord {
	now := time.Now().UTC()
	record := &JobRecord{
		JobID:     id.NewUUID(),
		Name:      name,
		State:     domain.JobStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[record.JobID] = record
	s.mu.Unlock()

	return copyRecord(record)
}

// Get returns a copy of the record for a job.
func (s *JobStore) Get(jobID string) (JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.jobs[jobID]
	if !ok {
		return JobRecord{}, false
	}
	return copyRecord(record), true
}

// ApplyEvent advances a job through the lifecycle state machine. The
// transition rules live in the lifecycle package; the store only holds
// the outcome.
func (s *JobStore) ApplyEvent(jobID string, event lifecycle.Event) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.jobs[jobID]
	if !ok {
		return JobRecord{}, ErrJobNotFound
	}

	next, err := lifecycle.Transition(record.State, event)
	if err != nil {
		return JobRecord{}, err
	}

	record.State = next
	record.UpdatedAt = time.Now().UTC()
	return copyRecord(record), nil
}

// SetError records failure details on a job.
func (s *JobStore) SetError(jobID, code, summary, detailsRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.jobs[jobID]; ok {
		record.ErrorCode = code
		record.ErrorSummary = summary
		record.ErrorDetailsRef = detailsRef
		record.UpdatedAt = time.Now().UTC()
	}
}

// SetCounts records measurement counts on a job.
func (s *JobStore) SetCounts(jobID string, counts map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.jobs[jobID]; ok {
		record.Counts = counts
		record.UpdatedAt = time.Now().UTC()
	}
}

// copyRecord clones a record so callers never share the stored maps.
func copyRecord(record *JobRecord) JobRecord {
	out := *record
	if record.Counts != nil {
		out.Counts = make(map[string]int64, len(record.Counts))
		for k, v := range record.Counts {
			out.Counts[k] = v
		}
	}
	return out
}
