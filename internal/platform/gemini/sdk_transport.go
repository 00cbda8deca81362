package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sikum-app/sikum-api/internal/generation"
	"github.com/sikum-app/sikum-api/internal/redact"
	"google.golang.org/genai"
)

// sdkTransport performs the generateContent call through the genai client.
type sdkTransport struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

func newSDKTransport(ctx context.Context, logger *slog.Logger, cfg Config) (*sdkTransport, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL + "/",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %s", redact.Error(err))
	}

	return &sdkTransport{
		logger: logger,
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateText implements Transport.
func (t *sdkTransport) GenerateText(
	ctx context.Context,
	prompt string,
	sampling generation.Sampling,
) (string, error) {
	t.logger.DebugContext(ctx, "sending generateContent request via SDK",
		"model", t.model,
		"prompt_length", len(prompt))

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(sampling.Temperature),
		TopK:            genai.Ptr(float32(sampling.TopK)),
		TopP:            genai.Ptr(sampling.TopP),
		MaxOutputTokens: int32(sampling.MaxOutputTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{StatusCode: apiErr.Code, Message: redact.String(apiErr.Message)}
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
			return "", &StatusError{StatusCode: apiErrPtr.Code, Message: redact.String(apiErrPtr.Message)}
		}
		return "", errors.New(redact.Error(err))
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.ErrInvalidResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", generation.ErrInvalidResponse
	}
	return candidate.Content.Parts[0].Text, nil
}
