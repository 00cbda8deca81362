package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/domain"
	"github.com/sikum-app/sikum-api/internal/events"
	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/redact"
	"github.com/sikum-app/sikum-api/internal/task"
)

// TaskRunner defines the interface for submitting background tasks
type TaskRunner interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task task.Task) error
}

// Config holds study service settings.
type Config struct {
	// MaxSessions caps the number of open sessions; zero means no limit.
	MaxSessions int
	// AdvanceDelay is reported to quiz clients after each selection.
	AdvanceDelay time.Duration
}

// Service manages study sessions and runs question generation for them.
type Service struct {
	generator generation.Generator
	runner    TaskRunner
	emitter   events.EventEmitter
	logger    *slog.Logger
	config    Config
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewService creates a new Service.
// It returns an error if any of the required dependencies are nil.
func NewService(
	generator generation.Generator,
	runner TaskRunner,
	emitter events.EventEmitter,
	config Config,
	logger *slog.Logger,
) (*Service, error) {
	if generator == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if runner == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "runner cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "emitter cannot be nil"}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		generator: generator,
		runner:    runner,
		emitter:   emitter,
		logger:    logger.With("component", "study_service"),
		config:    config,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
	}, nil
}

// CreateSession opens a new, empty session.
func (s *Service) CreateSession(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		return SessionView{}, ErrTooManySessions
	}

	sess := newSession(s.now(), s.config.AdvanceDelay)
	s.sessions[sess.id] = sess

	s.logger.InfoContext(ctx, "session created", "session_id", sess.id)
	return sess.view(), nil
}

// GetSession returns a session's current state.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// DeleteSession closes a session. A generation still in flight completes
// against the detached session and its result is discarded.
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)

	s.logger.InfoContext(ctx, "session deleted", "session_id", id)
	return nil
}

// AttachDocument sets the session's document, replacing any earlier one.
// Existing questions are kept until a new generation succeeds.
func (s *Service) AttachDocument(ctx context.Context, id uuid.UUID, doc *document.Document) (DocumentInfo, error) {
	sess, err := s.session(id)
	if err != nil {
		return DocumentInfo{}, err
	}

	sess.mu.Lock()
	sess.document = doc
	info := documentInfo(doc)
	sess.mu.Unlock()

	s.emit(ctx, events.TypeDocumentAttached, id, info)
	return *info, nil
}

// RemoveDocument clears the session's document.
func (s *Service) RemoveDocument(ctx context.Context, id uuid.UUID) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.document == nil {
		sess.mu.Unlock()
		return ErrNoDocument
	}
	sess.document = nil
	sess.mu.Unlock()

	s.emit(ctx, events.TypeDocumentRemoved, id, nil)
	return nil
}

// StartGeneration moves the session's generation status to in-flight and
// schedules the provider call on the task runner. The returned status is the
// in-flight value; callers poll GetSession for the outcome.
//
// Errors:
//   - ErrSessionNotFound, ErrNoDocument
//   - domain.ErrGenerationInFlight while an earlier request has not settled
//   - ErrSchedulingFailed when the runner rejects the task
func (s *Service) StartGeneration(ctx context.Context, id uuid.UUID) (SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	if sess.document == nil {
		sess.mu.Unlock()
		return SessionView{}, ErrNoDocument
	}

	previous := sess.status
	if err := sess.status.Begin(s.now()); err != nil {
		sess.mu.Unlock()
		return SessionView{}, err
	}
	text := sess.document.Text
	view := sess.view()
	sess.mu.Unlock()

	// Submit outside the lock: a runner may execute the task immediately
	t := task.NewFuncTask(task.TaskTypeQuestionGeneration, s.generationTask(sess, text))
	if err := s.runner.Submit(ctx, t); err != nil {
		// Nothing was dispatched, so the request never happened
		sess.mu.Lock()
		sess.status = previous
		sess.mu.Unlock()

		s.logger.ErrorContext(ctx, "failed to schedule generation",
			"session_id", id,
			"error", err)
		return SessionView{}, &ServiceError{
			Operation: "start_generation",
			Message:   "failed to submit task",
			Err:       fmt.Errorf("%w: %w", ErrSchedulingFailed, err),
		}
	}

	s.logger.InfoContext(ctx, "generation scheduled",
		"session_id", id,
		"task_id", t.ID(),
		"text_length", len(text))
	s.emit(ctx, events.TypeGenerationStarted, id, map[string]string{"task_id": t.ID().String()})
	return view, nil
}

// generationTask returns the background function for one generation. The
// status settles exactly once, whatever the outcome.
func (s *Service) generationTask(sess *Session, text string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		questions, genErr := s.generate(ctx, text)

		sess.mu.Lock()
		now := s.now()
		if genErr != nil {
			// Previous questions stay in place
			_ = sess.status.Fail(now, errors.New(redact.Error(genErr)))
		} else {
			sess.setQuestions(questions)
			_ = sess.status.Succeed(now)
		}
		sess.mu.Unlock()

		if genErr != nil {
			s.emit(ctx, events.TypeGenerationFailed, sess.id, map[string]string{"error": redact.Error(genErr)})
			return genErr
		}

		s.emit(ctx, events.TypeGenerationSucceeded, sess.id, map[string]int{"questions": len(questions)})
		return nil
	}
}

// generate calls the generator, converting a panic into a processing error.
func (s *Service) generate(ctx context.Context, text string) (questions []*domain.TriviaQuestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "generator panicked", "panic", r)
			questions = nil
			err = generation.Wrap(fmt.Errorf("generation panicked: %v", r))
		}
	}()
	return s.generator.Generate(ctx, text)
}

// Questions returns every question with a freshly shuffled answer list.
func (s *Service) Questions(ctx context.Context, id uuid.UUID) ([]QuestionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.questions) == 0 {
		return nil, ErrNoQuestions
	}
	return sess.questionViews(), nil
}

// DeckAction is a flashcard navigation step.
type DeckAction string

// Deck actions
const (
	DeckActionFlip     DeckAction = "flip"
	DeckActionNext     DeckAction = "next"
	DeckActionPrevious DeckAction = "previous"
)

// Flashcards returns the deck state.
func (s *Service) Flashcards(ctx context.Context, id uuid.UUID) (DeckView, error) {
	return s.withDeck(id, func(d *Deck) {})
}

// MoveDeck applies action to the deck and returns its new state. Moving past
// either end is a no-op.
func (s *Service) MoveDeck(ctx context.Context, id uuid.UUID, action DeckAction) (DeckView, error) {
	return s.withDeck(id, func(d *Deck) {
		switch action {
		case DeckActionFlip:
			d.Flip()
		case DeckActionNext:
			d.Next()
		case DeckActionPrevious:
			d.Previous()
		}
	})
}

func (s *Service) withDeck(id uuid.UUID, fn func(d *Deck)) (DeckView, error) {
	sess, err := s.session(id)
	if err != nil {
		return DeckView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.deck == nil || sess.deck.Len() == 0 {
		return DeckView{}, ErrNoQuestions
	}
	fn(sess.deck)
	return sess.deck.View(), nil
}

// Quiz returns the quiz state.
func (s *Service) Quiz(ctx context.Context, id uuid.UUID) (QuizView, error) {
	var view QuizView
	err := s.withQuiz(id, func(q *Quiz) error {
		view = q.View()
		return nil
	})
	return view, err
}

// Answer selects an answer for the current quiz question.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, answer string) (AnswerResult, error) {
	var result AnswerResult
	err := s.withQuiz(id, func(q *Quiz) error {
		var err error
		result, err = q.Select(answer)
		return err
	})
	return result, err
}

// AdvanceQuiz moves past the answered question.
func (s *Service) AdvanceQuiz(ctx context.Context, id uuid.UUID) (QuizView, error) {
	var view QuizView
	err := s.withQuiz(id, func(q *Quiz) error {
		if err := q.Advance(); err != nil {
			return err
		}
		view = q.View()
		return nil
	})
	return view, err
}

// RestartQuiz starts the quiz over with a zero score.
func (s *Service) RestartQuiz(ctx context.Context, id uuid.UUID) (QuizView, error) {
	var view QuizView
	err := s.withQuiz(id, func(q *Quiz) error {
		q.Restart()
		view = q.View()
		return nil
	})
	return view, err
}

func (s *Service) withQuiz(id uuid.UUID, fn func(q *Quiz) error) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.quiz == nil || len(sess.questions) == 0 {
		return ErrNoQuestions
	}
	return fn(sess.quiz)
}

func (s *Service) session(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// emit publishes a session event. Handler failures are logged by the
// emitter and never fail the operation.
func (s *Service) emit(ctx context.Context, eventType string, sessionID uuid.UUID, payload interface{}) {
	event, err := events.NewEvent(eventType, sessionID, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create event",
			"event_type", eventType,
			"error", err)
		return
	}
	_ = s.emitter.EmitEvent(ctx, event)
}
