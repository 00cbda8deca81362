package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/study"
)

var errNotStubbed = errors.New("mock: method not stubbed")

// MockStudyService lets each test stub only the calls it expects.
type MockStudyService struct {
	CreateSessionFn   func(ctx context.Context) (study.SessionView, error)
	GetSessionFn      func(ctx context.Context, id uuid.UUID) (study.SessionView, error)
	DeleteSessionFn   func(ctx context.Context, id uuid.UUID) error
	AttachDocumentFn  func(ctx context.Context, id uuid.UUID, doc *document.Document) (study.DocumentInfo, error)
	RemoveDocumentFn  func(ctx context.Context, id uuid.UUID) error
	StartGenerationFn func(ctx context.Context, id uuid.UUID) (study.SessionView, error)
	QuestionsFn       func(ctx context.Context, id uuid.UUID) ([]study.QuestionView, error)
	FlashcardsFn      func(ctx context.Context, id uuid.UUID) (study.DeckView, error)
	MoveDeckFn        func(ctx context.Context, id uuid.UUID, action study.DeckAction) (study.DeckView, error)
	QuizFn            func(ctx context.Context, id uuid.UUID) (study.QuizView, error)
	AnswerFn          func(ctx context.Context, id uuid.UUID, answer string) (study.AnswerResult, error)
	AdvanceQuizFn     func(ctx context.Context, id uuid.UUID) (study.QuizView, error)
	RestartQuizFn     func(ctx context.Context, id uuid.UUID) (study.QuizView, error)
}

func (m *MockStudyService) CreateSession(ctx context.Context) (study.SessionView, error) {
	if m.CreateSessionFn == nil {
		return study.SessionView{}, errNotStubbed
	}
	return m.CreateSessionFn(ctx)
}

func (m *MockStudyService) GetSession(ctx context.Context, id uuid.UUID) (study.SessionView, error) {
	if m.GetSessionFn == nil {
		return study.SessionView{}, errNotStubbed
	}
	return m.GetSessionFn(ctx, id)
}

func (m *MockStudyService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if m.DeleteSessionFn == nil {
		return errNotStubbed
	}
	return m.DeleteSessionFn(ctx, id)
}

func (m *MockStudyService) AttachDocument(
	ctx context.Context,
	id uuid.UUID,
	doc *document.Document,
) (study.DocumentInfo, error) {
	if m.AttachDocumentFn == nil {
		return study.DocumentInfo{}, errNotStubbed
	}
	return m.AttachDocumentFn(ctx, id, doc)
}

func (m *MockStudyService) RemoveDocument(ctx context.Context, id uuid.UUID) error {
	if m.RemoveDocumentFn == nil {
		return errNotStubbed
	}
	return m.RemoveDocumentFn(ctx, id)
}

func (m *MockStudyService) StartGeneration(ctx context.Context, id uuid.UUID) (study.SessionView, error) {
	if m.StartGenerationFn == nil {
		return study.SessionView{}, errNotStubbed
	}
	return m.StartGenerationFn(ctx, id)
}

func (m *MockStudyService) Questions(ctx context.Context, id uuid.UUID) ([]study.QuestionView, error) {
	if m.QuestionsFn == nil {
		return nil, errNotStubbed
	}
	return m.QuestionsFn(ctx, id)
}

func (m *MockStudyService) Flashcards(ctx context.Context, id uuid.UUID) (study.DeckView, error) {
	if m.FlashcardsFn == nil {
		return study.DeckView{}, errNotStubbed
	}
	return m.FlashcardsFn(ctx, id)
}

func (m *MockStudyService) MoveDeck(
	ctx context.Context,
	id uuid.UUID,
	action study.DeckAction,
) (study.DeckView, error) {
	if m.MoveDeckFn == nil {
		return study.DeckView{}, errNotStubbed
	}
	return m.MoveDeckFn(ctx, id, action)
}

func (m *MockStudyService) Quiz(ctx context.Context, id uuid.UUID) (study.QuizView, error) {
	if m.QuizFn == nil {
		return study.QuizView{}, errNotStubbed
	}
	return m.QuizFn(ctx, id)
}

func (m *MockStudyService) Answer(ctx context.Context, id uuid.UUID, answer string) (study.AnswerResult, error) {
	if m.AnswerFn == nil {
		return study.AnswerResult{}, errNotStubbed
	}
	return m.AnswerFn(ctx, id, answer)
}

func (m *MockStudyService) AdvanceQuiz(ctx context.Context, id uuid.UUID) (study.QuizView, error) {
	if m.AdvanceQuizFn == nil {
		return study.QuizView{}, errNotStubbed
	}
	return m.AdvanceQuizFn(ctx, id)
}

func (m *MockStudyService) RestartQuiz(ctx context.Context, id uuid.UUID) (study.QuizView, error) {
	if m.RestartQuizFn == nil {
		return study.QuizView{}, errNotStubbed
	}
	return m.RestartQuizFn(ctx, id)
}

// MockLoader records the last upload it saw.
type MockLoader struct {
	LoadFn func(ctx context.Context, name, contentType string, data []byte) (*document.Document, error)

	Name        string
	ContentType string
	Data        []byte
	Calls       int
}

func (m *MockLoader) Load(ctx context.Context, name, contentType string, data []byte) (*document.Document, error) {
	m.Calls++
	m.Name = name
	m.ContentType = contentType
	m.Data = data
	if m.LoadFn == nil {
		return &document.Document{Name: name, ContentType: document.ContentTypeText, Text: string(data)}, nil
	}
	return m.LoadFn(ctx, name, contentType, data)
}
