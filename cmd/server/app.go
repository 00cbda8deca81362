package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sikum-app/sikum-api/internal/config"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/events"
	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/platform/gemini"
	"github.com/sikum-app/sikum-api/internal/study"
	"github.com/sikum-app/sikum-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator    generation.Generator
	taskRunner   *task.TaskRunner
	eventBus     *events.SessionEventBus
	loader       *document.Loader
	studyService *study.Service
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := gemini.NewGenerator(ctx, logger, gemini.ConfigFromLLM(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	return newApplicationWithGenerator(cfg, logger, generator)
}

// newApplicationWithGenerator wires everything around an existing generator.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		loader:    document.NewLoader(),
	}

	var err error
	app.taskRunner, err = setupTaskRunner(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	app.eventBus = events.NewSessionEventBus(logger)
	app.eventBus.Subscribe(events.NewLogHandler(logger))

	app.studyService, err = study.NewService(
		app.generator,
		app.taskRunner,
		app.eventBus,
		study.Config{
			MaxSessions:  cfg.Study.MaxSessions,
			AdvanceDelay: cfg.Study.AdvanceDelay(),
		},
		logger,
	)
	if err != nil {
		app.taskRunner.Stop()
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner creates and starts the background generation workers.
func setupTaskRunner(cfg *config.Config, logger *slog.Logger) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
		TaskTimeout: cfg.LLM.RequestTimeout(),
	}, logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	app.logger.Info("Application shutdown completed")
}
