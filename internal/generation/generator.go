package generation

import (
	"context"

	"github.com/sikum-app/sikum-api/internal/domain"
)

// Generator defines the interface for generating trivia questions from
// document text. This interface is the boundary between the study service
// and external AI/LLM providers.
type Generator interface {
	// Generate normalizes text, asks the language model for questions and
	// returns the validated, non-empty question list.
	//
	// Errors:
	//   - ErrAuthentication when no API key is configured
	//   - *ProcessingError (matching ErrProcessing) for every other failure
	Generate(ctx context.Context, text string) ([]*domain.TriviaQuestion, error)
}
