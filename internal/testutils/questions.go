package testutils

import (
	"fmt"

	"github.com/sikum-app/sikum-api/internal/domain"
)

// MakeQuestions returns n distinct questions with three distractors each.
func MakeQuestions(n int) []*domain.TriviaQuestion {
	questions := make([]*domain.TriviaQuestion, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.NewTriviaQuestion(
			fmt.Sprintf("Question %d?", i),
			fmt.Sprintf("Answer %d", i),
			[]string{
				fmt.Sprintf("Wrong %d.1", i),
				fmt.Sprintf("Wrong %d.2", i),
				fmt.Sprintf("Wrong %d.3", i),
			},
		))
	}
	return questions
}
