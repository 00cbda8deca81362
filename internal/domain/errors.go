package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyQuestion is returned when a trivia question has no prompt text.
	ErrEmptyQuestion = errors.New("question text cannot be empty")

	// ErrEmptyCorrectAnswer is returned when a trivia question has no
	// correct answer text.
	ErrEmptyCorrectAnswer = errors.New("correct answer cannot be empty")

	// ErrGenerationInFlight is returned when a generation is started while
	// another one for the same session has not settled yet.
	ErrGenerationInFlight = errors.New("a generation request is already in flight")

	// ErrGenerationNotInFlight is returned when a generation outcome is
	// recorded without a matching Begin.
	ErrGenerationNotInFlight = errors.New("no generation request is in flight")
)
