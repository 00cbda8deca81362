package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sikum-app/sikum-api/internal/domain"
	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/redact"
)

// Generator implements generation.Generator against the Gemini API.
type Generator struct {
	logger    *slog.Logger
	config    Config
	transport Transport
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator for cfg.
//
// A missing API key is not a construction error: the generator is built
// without a transport and every Generate call fails with
// generation.ErrAuthentication.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid gemini configuration: %w", err)
	}

	logger = logger.With("component", "gemini", "model", cfg.Model, "transport", cfg.Transport)
	g := &Generator{logger: logger, config: cfg}

	if cfg.APIKey == "" {
		logger.WarnContext(ctx, "no API key configured, generation requests will fail")
		return g, nil
	}

	var err error
	switch cfg.Transport {
	case TransportSDK:
		g.transport, err = newSDKTransport(ctx, logger, cfg)
	default:
		g.transport, err = newRESTTransport(logger, cfg)
	}
	if err != nil {
		return nil, err
	}

	return g, nil
}

// NewGeneratorWithTransport creates a Generator that sends prompts through t.
// It is used where the provider call is replaced, such as in tests.
func NewGeneratorWithTransport(logger *slog.Logger, cfg Config, t Transport) *Generator {
	return &Generator{logger: logger, config: cfg.withDefaults(), transport: t}
}

// Generate implements generation.Generator.
func (g *Generator) Generate(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
	if g.config.APIKey == "" || g.transport == nil {
		return nil, generation.ErrAuthentication
	}

	questions, err := g.generate(ctx, text)
	if err != nil {
		g.logger.ErrorContext(ctx, "question generation failed", "error", redact.Error(err))
		return nil, generation.Wrap(err)
	}

	g.logger.InfoContext(ctx, "questions generated", "count", len(questions))
	return questions, nil
}

func (g *Generator) generate(ctx context.Context, text string) ([]*domain.TriviaQuestion, error) {
	excerpt := generation.NormalizeExcerpt(text)
	prompt, err := generation.BuildPrompt(excerpt)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "prompt built",
		"excerpt_length", len(excerpt),
		"prompt_length", len(prompt))

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	raw, err := g.transport.GenerateText(ctx, prompt, generation.DefaultSampling)
	if err != nil {
		return nil, err
	}

	return generation.DecodeQuestions(generation.StripFences(raw), generation.DecodeOptions{
		IncorrectAnswerCount: g.config.IncorrectAnswerCount,
	})
}
