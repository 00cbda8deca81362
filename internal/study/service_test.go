package study_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/domain"
	"github.com/sikum-app/sikum-api/internal/events"
	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/study"
	"github.com/sikum-app/sikum-api/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockGenerator is a generation.Generator with a replaceable function.
type MockGenerator struct {
	mu         sync.Mutex
	GenerateFn func(ctx context.Context, text string) ([]*domain.TriviaQuestion, error)
	Texts      []string
}

func (m *MockGenerator) Generate(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	m.mu.Unlock()
	return m.GenerateFn(ctx, text)
}

// syncRunner executes each task on submission.
type syncRunner struct {
	SubmitErr error
}

func (r *syncRunner) Submit(ctx context.Context, t task.Task) error {
	if r.SubmitErr != nil {
		return r.SubmitErr
	}
	_ = t.Execute(ctx)
	return nil
}

// heldRunner keeps tasks until Release is called.
type heldRunner struct {
	mu    sync.Mutex
	tasks []task.Task
}

func (r *heldRunner) Submit(ctx context.Context, t task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *heldRunner) Release(ctx context.Context) {
	r.mu.Lock()
	tasks := r.tasks
	r.tasks = nil
	r.mu.Unlock()
	for _, t := range tasks {
		_ = t.Execute(ctx)
	}
}

// recordingEmitter keeps every emitted event type.
type recordingEmitter struct {
	mu    sync.Mutex
	types []string
}

func (e *recordingEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, event.Type)
	return nil
}

func (e *recordingEmitter) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.types...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func succeedingGenerator(n int) *MockGenerator {
	return &MockGenerator{
		GenerateFn: func(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
			return makeQuestions(n), nil
		},
	}
}

func newTestService(t *testing.T, gen generation.Generator, runner study.TaskRunner) (*study.Service, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	svc, err := study.NewService(gen, runner, emitter, study.Config{MaxSessions: 10}, discardLogger())
	require.NoError(t, err)
	return svc, emitter
}

func textDocument(text string) *document.Document {
	return &document.Document{Name: "notes.txt", ContentType: document.ContentTypeText, Text: text}
}

func TestNewService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	gen := succeedingGenerator(1)
	_, err := study.NewService(nil, &syncRunner{}, &recordingEmitter{}, study.Config{}, nil)
	assert.Error(t, err)
	_, err = study.NewService(gen, nil, &recordingEmitter{}, study.Config{}, nil)
	assert.Error(t, err)
	_, err = study.NewService(gen, &syncRunner{}, nil, study.Config{}, nil)
	assert.Error(t, err)

	var serviceErr *study.ServiceError
	assert.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "create_service", serviceErr.Operation)
}

func TestService_SessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, succeedingGenerator(1), &syncRunner{})

	view, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, domain.GenerationStateIdle, view.Generation.State)
	assert.Nil(t, view.Document)

	got, err := svc.GetSession(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)

	require.NoError(t, svc.DeleteSession(ctx, view.ID))
	_, err = svc.GetSession(ctx, view.ID)
	assert.ErrorIs(t, err, study.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, view.ID), study.ErrSessionNotFound)
}

func TestService_SessionLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := study.NewService(succeedingGenerator(1), &syncRunner{}, &recordingEmitter{},
		study.Config{MaxSessions: 1}, discardLogger())
	require.NoError(t, err)

	_, err = svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx)
	assert.ErrorIs(t, err, study.ErrTooManySessions)
}

func TestService_Documents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, emitter := newTestService(t, succeedingGenerator(1), &syncRunner{})
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveDocument(ctx, sess.ID), study.ErrNoDocument)

	info, err := svc.AttachDocument(ctx, sess.ID, textDocument("Cells divide."))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name)
	assert.Equal(t, 13, info.Characters)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Document)
	assert.Equal(t, "notes.txt", view.Document.Name)

	require.NoError(t, svc.RemoveDocument(ctx, sess.ID))
	view, err = svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Document)

	_, err = svc.AttachDocument(ctx, uuid.New(), textDocument("x"))
	assert.ErrorIs(t, err, study.ErrSessionNotFound)

	assert.Equal(t, []string{events.TypeDocumentAttached, events.TypeDocumentRemoved}, emitter.Types())
}

func TestService_GenerationSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gen := succeedingGenerator(3)
	svc, emitter := newTestService(t, gen, &syncRunner{})
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	assert.ErrorIs(t, err, study.ErrNoDocument)

	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("Photosynthesis notes"))
	require.NoError(t, err)

	started, err := svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateInFlight, started.Generation.State)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateSucceeded, view.Generation.State)
	assert.Equal(t, 3, view.QuestionCount)
	assert.Empty(t, view.Generation.Error)
	assert.Equal(t, []string{"Photosynthesis notes"}, gen.Texts)

	questions, err := svc.Questions(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "Q1", questions[0].Question)
	assert.ElementsMatch(t, []string{"A1", "W1a", "W1b", "W1c"}, questions[0].Answers)

	assert.Contains(t, emitter.Types(), events.TypeGenerationSucceeded)
}

func TestService_GenerationFailureKeepsPreviousQuestions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fail := false
	gen := &MockGenerator{
		GenerateFn: func(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
			if fail {
				return nil, generation.NewProcessingError("no questions were generated")
			}
			return makeQuestions(2), nil
		},
	}
	svc, emitter := newTestService(t, gen, &syncRunner{})
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("notes"))
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)
	before, err := svc.Questions(ctx, sess.ID)
	require.NoError(t, err)

	fail = true
	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err, "the failure is reported through the status, not the start call")

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateFailed, view.Generation.State)
	assert.Equal(t, "processing error: no questions were generated", view.Generation.Error)
	assert.Equal(t, 2, view.QuestionCount)

	after, err := svc.Questions(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].ID, after[0].ID)

	assert.Contains(t, emitter.Types(), events.TypeGenerationFailed)
}

func TestService_OneGenerationInFlight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &heldRunner{}
	svc, _ := newTestService(t, succeedingGenerator(1), runner)
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("notes"))
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrGenerationInFlight)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, view.Generation.InFlight())

	runner.Release(ctx)

	view, err = svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateSucceeded, view.Generation.State)

	_, err = svc.StartGeneration(ctx, sess.ID)
	assert.NoError(t, err, "a settled request allows the next one")
}

func TestService_GenerationPanicSettlesStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := task.NewTaskRunner(task.TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, discardLogger())
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	var calls atomic.Int32
	gen := &MockGenerator{
		GenerateFn: func(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
			if calls.Add(1) == 1 {
				panic("decoder exploded")
			}
			return makeQuestions(3), nil
		},
	}
	svc, emitter := newTestService(t, gen, runner)
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("notes"))
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)

	settled := func() bool {
		view, err := svc.GetSession(ctx, sess.ID)
		return err == nil && view.Generation.Settled()
	}
	require.Eventually(t, settled, 2*time.Second, 10*time.Millisecond)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateFailed, view.Generation.State)
	assert.Contains(t, view.Generation.Error, "generation panicked: decoder exploded")
	assert.Equal(t, 0, view.QuestionCount)
	assert.Eventually(t, func() bool {
		for _, typ := range emitter.Types() {
			if typ == events.TypeGenerationFailed {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err, "a panicked request must not block the next one")
	require.Eventually(t, settled, 2*time.Second, 10*time.Millisecond)

	view, err = svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateSucceeded, view.Generation.State)
	assert.Equal(t, 3, view.QuestionCount)
}

func TestService_SchedulingFailureRestoresStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, succeedingGenerator(1), &syncRunner{SubmitErr: task.ErrQueueFull})
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("notes"))
	require.NoError(t, err)

	_, err = svc.StartGeneration(ctx, sess.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, study.ErrSchedulingFailed)
	assert.ErrorIs(t, err, task.ErrQueueFull)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GenerationStateIdle, view.Generation.State)
}

func TestService_DeckAndQuiz(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t, succeedingGenerator(2), &syncRunner{})
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.Flashcards(ctx, sess.ID)
	assert.ErrorIs(t, err, study.ErrNoQuestions)
	_, err = svc.Quiz(ctx, sess.ID)
	assert.ErrorIs(t, err, study.ErrNoQuestions)
	_, err = svc.Questions(ctx, sess.ID)
	assert.ErrorIs(t, err, study.ErrNoQuestions)

	_, err = svc.AttachDocument(ctx, sess.ID, textDocument("notes"))
	require.NoError(t, err)
	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)

	deck, err := svc.MoveDeck(ctx, sess.ID, study.DeckActionFlip)
	require.NoError(t, err)
	assert.Equal(t, "A1", deck.Answer)
	deck, err = svc.MoveDeck(ctx, sess.ID, study.DeckActionNext)
	require.NoError(t, err)
	assert.Equal(t, "Q2", deck.Question)
	deck, err = svc.MoveDeck(ctx, sess.ID, study.DeckActionPrevious)
	require.NoError(t, err)
	assert.Equal(t, 0, deck.Index)

	quiz, err := svc.Quiz(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, quiz.Total)

	result, err := svc.Answer(ctx, sess.ID, "A1")
	require.NoError(t, err)
	assert.True(t, result.Correct)

	_, err = svc.Answer(ctx, sess.ID, "W1a")
	assert.ErrorIs(t, err, study.ErrAlreadyAnswered)

	quiz, err = svc.AdvanceQuiz(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, quiz.Index)

	_, err = svc.AdvanceQuiz(ctx, sess.ID)
	assert.ErrorIs(t, err, study.ErrNotAnswered)

	quiz, err = svc.RestartQuiz(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, quiz.Index)
	assert.Equal(t, 0, quiz.Score)

	// A new generation resets both walkers
	_, err = svc.MoveDeck(ctx, sess.ID, study.DeckActionNext)
	require.NoError(t, err)
	_, err = svc.StartGeneration(ctx, sess.ID)
	require.NoError(t, err)
	deck, err = svc.Flashcards(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, deck.Index)
}
