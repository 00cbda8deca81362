package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrRunnerStopped is returned by Submit after Stop has been called.
var ErrRunnerStopped = errors.New("task runner is stopped")

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds a single task execution; zero means no timeout
	TaskTimeout time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   32,
	}
}

// TaskRunner manages background task processing. It pairs a bounded
// in-memory TaskQueue with a WorkerPool.
type TaskRunner struct {
	queue    *TaskQueue
	pool     *WorkerPool
	logger   *slog.Logger
	stopOnce sync.Once
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	logger = logger.With("component", "task_runner")
	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{
		WorkerCount: config.WorkerCount,
		TaskTimeout: config.TaskTimeout,
	}, logger)

	pool.SetErrorHandler(func(task Task, err error) {
		// Default error handler just logs the error
		logger.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
	})

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function.
// It must be called before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit adds a new task to the queue. It never blocks: a full queue
// returns ErrQueueFull and a stopped runner returns ErrRunnerStopped.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.queue.Enqueue(task)
	if errors.Is(err, ErrQueueClosed) {
		return ErrRunnerStopped
	}
	return err
}

// Start begins processing tasks
func (r *TaskRunner) Start() error {
	r.pool.Start()
	return nil
}

// Stop gracefully shuts down the task runner. Running tasks see their
// context cancelled and every queued task is executed once before Stop
// returns, so no submitted task is silently dropped.
func (r *TaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.pool.cancel()
		// Drains tasks submitted before Start was ever called
		r.pool.Start()
		r.pool.Stop()
	})
}
