package study

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/domain"
)

// Session is one user's study state. All fields are guarded by mu.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	createdAt time.Time

	document  *document.Document
	questions []*domain.TriviaQuestion
	status    domain.GenerationStatus

	deck *Deck
	quiz *Quiz

	rng          *rand.Rand
	advanceDelay time.Duration
}

// DocumentInfo describes the uploaded document without its text.
type DocumentInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Characters  int    `json:"characters"`
}

// SessionView is the client-facing state of a session.
type SessionView struct {
	ID            uuid.UUID               `json:"id"`
	CreatedAt     time.Time               `json:"created_at"`
	Document      *DocumentInfo           `json:"document,omitempty"`
	QuestionCount int                     `json:"question_count"`
	Generation    domain.GenerationStatus `json:"generation"`
}

// QuestionView is a question with a freshly shuffled answer list.
type QuestionView struct {
	ID               uuid.UUID `json:"id"`
	Question         string    `json:"question"`
	CorrectAnswer    string    `json:"correct_answer"`
	IncorrectAnswers []string  `json:"incorrect_answers"`
	Answers          []string  `json:"answers"`
}

func newSession(now time.Time, advanceDelay time.Duration) *Session {
	return &Session{
		id:           uuid.New(),
		createdAt:    now.UTC(),
		status:       domain.NewGenerationStatus(),
		rng:          rand.New(rand.NewSource(now.UnixNano())),
		advanceDelay: advanceDelay,
	}
}

// view must be called with mu held.
func (s *Session) view() SessionView {
	v := SessionView{
		ID:            s.id,
		CreatedAt:     s.createdAt,
		QuestionCount: len(s.questions),
		Generation:    s.status,
	}
	if s.document != nil {
		v.Document = documentInfo(s.document)
	}
	return v
}

// setQuestions replaces the question list and resets the deck and quiz.
// It must be called with mu held.
func (s *Session) setQuestions(questions []*domain.TriviaQuestion) {
	s.questions = questions
	s.deck = NewDeck(questions)
	s.quiz = NewQuiz(questions, s.rng, s.advanceDelay)
}

// questionViews must be called with mu held.
func (s *Session) questionViews() []QuestionView {
	views := make([]QuestionView, 0, len(s.questions))
	for _, q := range s.questions {
		views = append(views, QuestionView{
			ID:               q.ID,
			Question:         q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: append([]string(nil), q.IncorrectAnswers...),
			Answers:          q.AllAnswers(s.rng),
		})
	}
	return views
}

func documentInfo(doc *document.Document) *DocumentInfo {
	return &DocumentInfo{
		Name:        doc.Name,
		ContentType: doc.ContentType,
		Characters:  doc.Characters(),
	}
}
