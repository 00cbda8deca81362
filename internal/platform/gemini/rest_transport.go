package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/redact"
)

// Transport sends one prompt to the model and returns the first candidate's
// first text part.
type Transport interface {
	GenerateText(ctx context.Context, prompt string, sampling generation.Sampling) (string, error)
}

// restTransport calls the generateContent endpoint directly over HTTP.
type restTransport struct {
	logger   *slog.Logger
	client   *http.Client
	endpoint *url.URL
}

func newRESTTransport(logger *slog.Logger, cfg Config) (*restTransport, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/v1beta/models/%s:generateContent", cfg.BaseURL, cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", cfg.APIKey)
	endpoint.RawQuery = q.Encode()

	return &restTransport{
		logger:   logger,
		client:   cfg.HTTPClient,
		endpoint: endpoint,
	}, nil
}

// GenerateText implements Transport.
func (t *restTransport) GenerateText(
	ctx context.Context,
	prompt string,
	sampling generation.Sampling,
) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     sampling.Temperature,
			TopK:            sampling.TopK,
			TopP:            sampling.TopP,
			MaxOutputTokens: sampling.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	t.logger.DebugContext(ctx, "sending generateContent request",
		"url", redact.URL(t.endpoint),
		"body_bytes", len(body))

	resp, err := t.client.Do(req)
	if err != nil {
		// url.Error echoes the request URL, key included
		return "", errors.New(redact.Error(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.DebugContext(ctx, "received generateContent response",
		"status", resp.StatusCode,
		"body_bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil {
			statusErr.Message = redact.String(apiErr.Error.Message)
		}
		return "", statusErr
	}

	var envelope generateResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", generation.ErrInvalidResponse
	}

	text, ok := envelope.firstText()
	if !ok {
		return "", generation.ErrInvalidResponse
	}
	return text, nil
}
