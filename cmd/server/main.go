// Package main implements the entry point for the Sikum API server, which
// turns uploaded study material into trivia questions and serves them as
// flashcards and quizzes.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sikum-app/sikum-api/internal/config"
	"github.com/sikum-app/sikum-api/internal/platform/logger"
)

func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// loadAppConfig loads the configuration and logs its non-secret parts.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_model", cfg.LLM.ModelName,
		"llm_transport", cfg.LLM.Transport)
	slog.Debug("LLM configuration", "api_key_present", cfg.LLM.GeminiAPIKey != "")

	return cfg, nil
}
