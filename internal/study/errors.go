package study

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the study service. The API layer maps these
// to HTTP status codes.
var (
	// ErrSessionNotFound indicates that no session exists with the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions indicates that the session limit has been reached.
	ErrTooManySessions = errors.New("too many open sessions")

	// ErrNoDocument indicates that generation was requested before a
	// document was uploaded.
	ErrNoDocument = errors.New("no document has been uploaded")

	// ErrNoQuestions indicates that the deck or quiz was requested before
	// any generation succeeded.
	ErrNoQuestions = errors.New("no questions have been generated")

	// ErrAlreadyAnswered indicates a second selection for the same quiz question.
	ErrAlreadyAnswered = errors.New("question has already been answered")

	// ErrUnknownAnswer indicates a selection that is not one of the choices.
	ErrUnknownAnswer = errors.New("answer is not one of the choices")

	// ErrNotAnswered indicates an attempt to advance before selecting an answer.
	ErrNotAnswered = errors.New("current question has not been answered")

	// ErrQuizFinished indicates an action on a quiz that has no questions left.
	ErrQuizFinished = errors.New("quiz is finished")

	// ErrSchedulingFailed indicates that the generation could not be queued.
	ErrSchedulingFailed = errors.New("generation could not be scheduled")
)

// ServiceError wraps unexpected errors from the study service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_generation")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
