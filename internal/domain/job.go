package domain

import "time"

// JobStatus is a point-in-time snapshot of a job's lifecycle.
type JobStatus struct {
	JobID     string    `json:"job_id"`
	State     JobState  `json:"state"`
	Stage     string    `json:"stage"`
	Progress  float64   `json:"progress"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobUpdate is one event on a job's update stream. EventSeq is strictly
// increasing within a stream.
type JobUpdate struct {
	JobID     string    `json:"job_id"`
	State     JobState  `json:"state"`
	Stage     string    `json:"stage"`
	Progress  float64   `json:"progress"`
	Message   string    `json:"message"`
	EventSeq  int64     `json:"event_seq"`
	Timestamp time.Time `json:"timestamp"`
}
