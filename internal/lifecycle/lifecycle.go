// Package lifecycle encodes the deterministic job lifecycle state machine
// shared by the kernel gateway and the public API.
//
// Transition is the only place where transition rules live; callers apply
// events through it and never mutate states directly.
package lifecycle

import (
	"fmt"

	"github.com/Eigen-OS/eigen-os/internal/domain"
)

// Event represents a lifecycle event that can cause a state transition.
type Event string

const (
	EventEnqueued        Event = "ENQUEUED"
	EventStartCompiling  Event = "START_COMPILING"
	EventFinishCompiling Event = "FINISH_COMPILING"
	EventStartRunning    Event = "START_RUNNING"
	EventFinishRunningOk Event = "FINISH_RUNNING_OK"
	EventFail            Event = "FAIL"
	EventCancel          Event = "CANCEL"
)

// IsValid checks if the event is valid
func (e Event) IsValid() bool {
	switch e {
	case EventEnqueued, EventStartCompiling, EventFinishCompiling,
		EventStartRunning, EventFinishRunningOk, EventFail, EventCancel:
		return true
	}
	return false
}

// TransitionError reports an event that is not legal in the current state.
type TransitionError struct {
	From  domain.JobState
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s --%s--> ?", e.From, e.Event)
}

// Transition computes the next state for a given current state and event.
// It is pure and deterministic; terminal states accept no events.
func Transition(from domain.JobState, event Event) (domain.JobState, error) {
	if from.IsTerminal() {
		return "", &TransitionError{From: from, Event: event}
	}

	switch {
	case from == domain.JobStatePending && event == EventStartCompiling:
		return domain.JobStateCompiling, nil
	case from == domain.JobStateCompiling && event == EventFinishCompiling:
		return domain.JobStateQueued, nil
	case from == domain.JobStateQueued && event == EventStartRunning:
		return domain.JobStateRunning, nil
	case from == domain.JobStateRunning && event == EventFinishRunningOk:
		return domain.JobStateDone, nil

	// Cancellation and failure are allowed from any non-terminal state.
	case event == EventCancel:
		return domain.JobStateCancelled, nil
	case event == EventFail:
		return domain.JobStateError, nil

	// Enqueued is a creation event; the record starts and stays in Pending.
	case from == domain.JobStatePending && event == EventEnqueued:
		return domain.JobStatePending, nil
	}

	return "", &TransitionError{From: from, Event: event}
}

// Progress maps a state to coarse pipeline progress. Terminal states all
// report 1.0 so clients can treat progress as monotone.
func Progress(state domain.JobState) float64 {
	switch state {
	case domain.JobStatePending:
		return 0.0
	case domain.JobStateCompiling:
		return 0.25
	case domain.JobStateQueued:
		return 0.5
	case domain.JobStateRunning:
		return 0.75
	default:
		return 1.0
	}
}
