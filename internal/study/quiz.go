package study

import (
	"math/rand"
	"time"

	"github.com/sikum-app/sikum-api/internal/domain"
)

// Quiz walks the question list as multiple choice. Each question's answer
// ordering is shuffled once when the quiz arrives at it and kept until the
// quiz moves on. Selection is terminal per question and scoring is exact
// string equality against the correct answer.
type Quiz struct {
	questions    []*domain.TriviaQuestion
	rng          *rand.Rand
	advanceDelay time.Duration

	index    int
	answers  []string
	selected string
	answered bool
	score    int
	finished bool
}

// QuizView is the client-facing state of a quiz.
type QuizView struct {
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Score      int      `json:"score"`
	Finished   bool     `json:"finished"`
	Percent    int      `json:"percent"`
	QuestionID string   `json:"question_id,omitempty"`
	Question   string   `json:"question,omitempty"`
	Answers    []string `json:"answers,omitempty"`
	Answered   bool     `json:"answered"`
	Selected   string   `json:"selected,omitempty"`
	// CorrectAnswer is revealed once the current question is answered.
	CorrectAnswer string `json:"correct_answer,omitempty"`
	// AdvanceAfterMillis is how long clients show feedback before advancing.
	AdvanceAfterMillis int64 `json:"advance_after_ms,omitempty"`
}

// AnswerResult is the outcome of a selection.
type AnswerResult struct {
	Correct            bool   `json:"correct"`
	Selected           string `json:"selected"`
	CorrectAnswer      string `json:"correct_answer"`
	Score              int    `json:"score"`
	AdvanceAfterMillis int64  `json:"advance_after_ms"`
}

// NewQuiz creates a quiz positioned on the first question. rng orders the
// answers; advanceDelay is reported to clients after each selection.
func NewQuiz(questions []*domain.TriviaQuestion, rng *rand.Rand, advanceDelay time.Duration) *Quiz {
	q := &Quiz{
		questions:    questions,
		rng:          rng,
		advanceDelay: advanceDelay,
	}
	q.Restart()
	return q
}

// Restart returns to the first question with a zero score.
func (q *Quiz) Restart() {
	q.index = 0
	q.score = 0
	q.finished = len(q.questions) == 0
	q.arrive()
}

// arrive captures the answer ordering for the current question.
func (q *Quiz) arrive() {
	q.selected = ""
	q.answered = false
	q.answers = nil
	if !q.finished {
		q.answers = q.questions[q.index].AllAnswers(q.rng)
	}
}

// Select records the answer for the current question.
func (q *Quiz) Select(answer string) (AnswerResult, error) {
	if q.finished {
		return AnswerResult{}, ErrQuizFinished
	}
	if q.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	current := q.questions[q.index]
	if !current.HasAnswer(answer) {
		return AnswerResult{}, ErrUnknownAnswer
	}

	q.selected = answer
	q.answered = true
	correct := current.IsCorrect(answer)
	if correct {
		q.score++
	}

	return AnswerResult{
		Correct:            correct,
		Selected:           answer,
		CorrectAnswer:      current.CorrectAnswer,
		Score:              q.score,
		AdvanceAfterMillis: q.advanceDelay.Milliseconds(),
	}, nil
}

// Advance moves past an answered question. After the last question the quiz
// is finished.
func (q *Quiz) Advance() error {
	if q.finished {
		return ErrQuizFinished
	}
	if !q.answered {
		return ErrNotAnswered
	}

	if q.index < len(q.questions)-1 {
		q.index++
	} else {
		q.finished = true
	}
	q.arrive()
	return nil
}

// Finished reports whether every question has been answered and passed.
func (q *Quiz) Finished() bool {
	return q.finished
}

// Score returns the number of correct selections.
func (q *Quiz) Score() int {
	return q.score
}

// Percent returns the score as a whole percentage, truncated.
func (q *Quiz) Percent() int {
	if len(q.questions) == 0 {
		return 0
	}
	return q.score * 100 / len(q.questions)
}

// View returns the quiz's client-facing state.
func (q *Quiz) View() QuizView {
	view := QuizView{
		Index:    q.index,
		Total:    len(q.questions),
		Score:    q.score,
		Finished: q.finished,
		Percent:  q.Percent(),
		Answered: q.answered,
		Selected: q.selected,
	}
	if q.finished {
		return view
	}

	current := q.questions[q.index]
	view.QuestionID = current.ID.String()
	view.Question = current.Question
	view.Answers = append([]string(nil), q.answers...)
	if q.answered {
		view.CorrectAnswer = current.CorrectAnswer
		view.AdvanceAfterMillis = q.advanceDelay.Milliseconds()
	}
	return view
}
