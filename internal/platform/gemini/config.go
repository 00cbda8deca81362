package gemini

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sikum-app/sikum-api/internal/config"
)

// Transport names accepted by Config.Transport.
const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

// DefaultBaseURL is the public Gemini API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Config holds everything the generator needs. The API key is passed in
// explicitly; the generator never reads it from the environment.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Transport string
	// Timeout bounds a single provider call; zero means no timeout beyond
	// the caller's context.
	Timeout time.Duration
	// IncorrectAnswerCount, when positive, enforces an exact distractor
	// count during decoding.
	IncorrectAnswerCount int
	// HTTPClient is optional; http.DefaultClient is used when nil.
	HTTPClient *http.Client
}

// ConfigFromLLM maps application configuration onto generator configuration.
func ConfigFromLLM(llm config.LLMConfig) Config {
	return Config{
		APIKey:               llm.GeminiAPIKey,
		BaseURL:              llm.BaseURL,
		Model:                llm.ModelName,
		Transport:            llm.Transport,
		Timeout:              llm.RequestTimeout(),
		IncorrectAnswerCount: llm.IncorrectAnswerCount,
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Transport == "" {
		c.Transport = TransportREST
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	return c
}

func (c Config) validate() error {
	if c.Model == "" {
		return errors.New("model name cannot be empty")
	}
	if c.IncorrectAnswerCount < 0 {
		return errors.New("incorrect answer count cannot be negative")
	}
	switch c.Transport {
	case TransportREST, TransportSDK:
		return nil
	default:
		return errors.New("unknown transport " + c.Transport)
	}
}
