package domain

import (
	"fmt"
	"time"
)

// GenerationState represents where a question generation request is in its
// lifecycle.
type GenerationState string

// Possible generation states
const (
	GenerationStateIdle      GenerationState = "idle"
	GenerationStateInFlight  GenerationState = "in_flight"
	GenerationStateSucceeded GenerationState = "succeeded"
	GenerationStateFailed    GenerationState = "failed"
)

// GenerationStatus is the single value describing a session's generation
// request. Busy-ness and outcome are derived from State, so a settled request
// can never look busy and a busy request can never carry an outcome.
type GenerationStatus struct {
	State      GenerationState `json:"state"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// NewGenerationStatus returns an idle status.
func NewGenerationStatus() GenerationStatus {
	return GenerationStatus{State: GenerationStateIdle}
}

// InFlight reports whether a request has been dispatched and not yet settled.
func (s GenerationStatus) InFlight() bool {
	return s.State == GenerationStateInFlight
}

// Settled reports whether the last request finished, successfully or not.
func (s GenerationStatus) Settled() bool {
	return s.State == GenerationStateSucceeded || s.State == GenerationStateFailed
}

// Begin moves the status to in-flight. Any previous outcome is cleared.
func (s *GenerationStatus) Begin(now time.Time) error {
	if s.State == GenerationStateInFlight {
		return ErrGenerationInFlight
	}
	*s = GenerationStatus{
		State:     GenerationStateInFlight,
		StartedAt: now.UTC(),
	}
	return nil
}

// Succeed settles an in-flight request successfully.
func (s *GenerationStatus) Succeed(now time.Time) error {
	if s.State != GenerationStateInFlight {
		return fmt.Errorf("%w: cannot succeed from %q", ErrGenerationNotInFlight, s.State)
	}
	s.State = GenerationStateSucceeded
	s.Error = ""
	s.FinishedAt = now.UTC()
	return nil
}

// Fail settles an in-flight request with the failure's description.
func (s *GenerationStatus) Fail(now time.Time, cause error) error {
	if s.State != GenerationStateInFlight {
		return fmt.Errorf("%w: cannot fail from %q", ErrGenerationNotInFlight, s.State)
	}
	s.State = GenerationStateFailed
	if cause != nil {
		s.Error = cause.Error()
	}
	s.FinishedAt = now.UTC()
	return nil
}
