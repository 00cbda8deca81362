package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/sikum-app/sikum-api/internal/api/shared"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/domain"
	"github.com/sikum-app/sikum-api/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"session not found", study.ErrSessionNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", study.ErrSessionNotFound), http.StatusNotFound},
		{"generation in flight", domain.ErrGenerationInFlight, http.StatusConflict},
		{"no questions", study.ErrNoQuestions, http.StatusConflict},
		{"already answered", study.ErrAlreadyAnswered, http.StatusConflict},
		{"not answered", study.ErrNotAnswered, http.StatusConflict},
		{"quiz finished", study.ErrQuizFinished, http.StatusConflict},
		{"invalid id", ErrInvalidID, http.StatusBadRequest},
		{"empty upload", ErrEmptyUpload, http.StatusBadRequest},
		{"malformed upload", ErrMalformedUpload, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"invalid body", shared.ErrInvalidBody, http.StatusBadRequest},
		{"no document", study.ErrNoDocument, http.StatusBadRequest},
		{"unknown answer", study.ErrUnknownAnswer, http.StatusBadRequest},
		{"upload too large", ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported type", document.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{"unreadable document", document.ErrUnreadableDocument, http.StatusUnprocessableEntity},
		{"no text", document.ErrNoText, http.StatusUnprocessableEntity},
		{"too many sessions", study.ErrTooManySessions, http.StatusTooManyRequests},
		{"scheduling failed", study.ErrSchedulingFailed, http.StatusServiceUnavailable},
		{"unknown", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Could not load PDF", GetSafeErrorMessage(document.ErrUnreadableDocument))
	assert.Equal(t, "Could not extract text from PDF", GetSafeErrorMessage(document.ErrNoText))
	assert.Equal(t, "Session not found",
		GetSafeErrorMessage(fmt.Errorf("get: %w", study.ErrSessionNotFound)))

	internal := errors.New("dial tcp 10.0.0.1:443: connection refused")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type request struct {
		Answer string `validate:"required"`
		Action string `validate:"oneof=flip next previous"`
	}

	v := validator.New()

	err := v.Struct(request{Action: "flip"})
	require.Error(t, err)
	assert.Equal(t, "Invalid answer: required field", SanitizeValidationError(err))

	err = v.Struct(request{Answer: "x", Action: "shuffle"})
	require.Error(t, err)
	assert.Equal(t, "Invalid action: invalid value", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
