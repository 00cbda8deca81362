package domain

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// TriviaQuestion is one generated multiple-choice item: a prompt, its correct
// answer and a set of distractors.
//
// The ID is generation-local. It is assigned when the question is decoded and
// is never part of the provider's wire format, so decoding the same payload
// twice yields questions with equal content and different IDs.
type TriviaQuestion struct {
	ID               uuid.UUID
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// NewTriviaQuestion creates a TriviaQuestion with a fresh identity.
// The incorrect answers are copied so later changes to the caller's slice do
// not leak into the question.
func NewTriviaQuestion(question, correctAnswer string, incorrectAnswers []string) *TriviaQuestion {
	return &TriviaQuestion{
		ID:               uuid.New(),
		Question:         question,
		CorrectAnswer:    correctAnswer,
		IncorrectAnswers: append([]string(nil), incorrectAnswers...),
	}
}

// Validate checks if the TriviaQuestion has valid data. Blank question or
// correct-answer text fails with ErrValidation wrapping the specific cause.
func (q *TriviaQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyQuestion)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyCorrectAnswer)
	}
	return nil
}

// AllAnswers combines the incorrect answers and the correct answer and returns
// them in a random order. The order is computed on every call and never
// stored, so repeated calls may disagree.
//
// A nil rng falls back to the package-level source.
func (q *TriviaQuestion) AllAnswers(rng *rand.Rand) []string {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.IncorrectAnswers...)
	answers = append(answers, q.CorrectAnswer)

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	return answers
}

// IsCorrect reports whether answer matches the correct answer exactly.
// There is no partial credit and no normalization.
func (q *TriviaQuestion) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// HasAnswer reports whether answer is one of the question's choices.
func (q *TriviaQuestion) HasAnswer(answer string) bool {
	if q.IsCorrect(answer) {
		return true
	}
	for _, a := range q.IncorrectAnswers {
		if a == answer {
			return true
		}
	}
	return false
}
