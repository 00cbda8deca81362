package gemini

import (
	"fmt"

	"github.com/sikum-app/sikum-api/internal/generation"
)

// maxResponseBytes caps how much of a provider response body is read.
const maxResponseBytes = 4 << 20

// StatusError is returned when the provider answers with a non-2xx status.
// It matches generation.ErrInvalidResponse.
type StatusError struct {
	StatusCode int
	// Message is the provider's error.message, when the body carried one.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", generation.ErrInvalidResponse, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", generation.ErrInvalidResponse, e.StatusCode, e.Message)
}

// Is makes every StatusError match generation.ErrInvalidResponse.
func (e *StatusError) Is(target error) bool {
	return target == generation.ErrInvalidResponse
}
