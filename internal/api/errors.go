package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sikum-app/sikum-api/internal/api/shared"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/domain"
	"github.com/sikum-app/sikum-api/internal/study"
)

// Request errors raised by the handlers themselves.
var (
	// ErrInvalidID is returned when a path parameter is not a valid UUID.
	ErrInvalidID = errors.New("invalid id")

	// ErrUploadTooLarge is returned when an upload exceeds the size limit.
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")

	// ErrEmptyUpload is returned when an upload carries no bytes.
	ErrEmptyUpload = errors.New("upload is empty")

	// ErrMalformedUpload is returned when the upload body cannot be read.
	ErrMalformedUpload = errors.New("malformed upload")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, study.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflicts with the session's current state
	case errors.Is(err, domain.ErrGenerationInFlight),
		errors.Is(err, study.ErrNoQuestions),
		errors.Is(err, study.ErrAlreadyAnswered),
		errors.Is(err, study.ErrNotAnswered),
		errors.Is(err, study.ErrQuizFinished):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrEmptyUpload),
		errors.Is(err, ErrMalformedUpload),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, shared.ErrInvalidBody),
		errors.Is(err, study.ErrNoDocument),
		errors.Is(err, study.ErrUnknownAnswer),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Upload errors
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, document.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrUnreadableDocument),
		errors.Is(err, document.ErrNoText):
		return http.StatusUnprocessableEntity

	// Capacity errors
	case errors.Is(err, study.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, study.ErrSchedulingFailed):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, study.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, domain.ErrGenerationInFlight):
		return "A generation request is already in flight"
	case errors.Is(err, study.ErrNoQuestions):
		return "No questions have been generated yet"
	case errors.Is(err, study.ErrAlreadyAnswered):
		return "This question has already been answered"
	case errors.Is(err, study.ErrNotAnswered):
		return "Answer the current question first"
	case errors.Is(err, study.ErrQuizFinished):
		return "The quiz is finished"
	case errors.Is(err, ErrInvalidID):
		return "Invalid session ID"
	case errors.Is(err, ErrEmptyUpload):
		return "Document is empty"
	case errors.Is(err, ErrMalformedUpload):
		return "Could not read the uploaded document"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"
	case errors.Is(err, study.ErrNoDocument):
		return "Upload a document first"
	case errors.Is(err, study.ErrUnknownAnswer):
		return "Answer is not one of the choices"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, ErrUploadTooLarge):
		return "Document is too large"
	case errors.Is(err, document.ErrUnsupportedType):
		return "Only PDF and plain text documents are supported"
	case errors.Is(err, document.ErrUnreadableDocument):
		return "Could not load PDF"
	case errors.Is(err, document.ErrNoText):
		return "Could not extract text from PDF"
	case errors.Is(err, study.ErrTooManySessions):
		return "Too many open sessions, try again later"
	case errors.Is(err, study.ErrSchedulingFailed):
		return "The generator is busy, try again later"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message that
// names the offending field without echoing struct internals.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return "Invalid " + strings.ToLower(fe.Field()) + ": " + getValidationTagMessage(fe.Tag())
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// respondWithMappedError writes the status and safe message for err.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
