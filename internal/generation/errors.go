package generation

import (
	"errors"
	"fmt"
)

// Error taxonomy for question generation.
var (
	// ErrAuthentication is returned when no API key is configured. It is
	// raised before any network call is made.
	ErrAuthentication = errors.New("api error")

	// ErrInvalidResponse is returned when the provider's envelope does not
	// contain a first candidate with a first text part, or the provider
	// answered with an error status.
	ErrInvalidResponse = errors.New("invalid response from server")

	// ErrInvalidData is returned when the model output cannot be turned into
	// bytes for decoding (it is not valid UTF-8).
	ErrInvalidData = errors.New("could not process the response data")

	// ErrProcessing is the catch-all for shape, schema and emptiness failures
	// and for any lower-level failure re-raised by Wrap.
	ErrProcessing = errors.New("processing error")
)

// ProcessingError is the uniform failure surfaced by a generation. Message is
// the user-visible description; Err, when set, is the underlying cause and
// stays reachable through errors.Is and errors.As.
type ProcessingError struct {
	Message string
	Err     error
}

// NewProcessingError creates a ProcessingError with no underlying cause.
func NewProcessingError(message string) *ProcessingError {
	return &ProcessingError{Message: message}
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProcessing, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is makes every ProcessingError match ErrProcessing.
func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

// Wrap re-raises err as a ProcessingError whose message is err's own
// description. A ProcessingError is returned unchanged so failures raised by
// the validation gates are not wrapped twice. Wrap(nil) returns nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	if pe, ok := err.(*ProcessingError); ok {
		return pe
	}

	return &ProcessingError{Message: err.Error(), Err: err}
}
