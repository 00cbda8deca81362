//go:build !release

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every variable Load reads, so each test starts clean.
var configEnvVars = []string{
	"SIKUM_SERVER_PORT",
	"SIKUM_SERVER_LOG_LEVEL",
	"SIKUM_SERVER_MAX_UPLOAD_BYTES",
	"SIKUM_SERVER_SHUTDOWN_TIMEOUT_SECONDS",
	"SIKUM_LLM_GEMINI_API_KEY",
	"GEMINI_API_KEY",
	"SIKUM_LLM_MODEL_NAME",
	"SIKUM_LLM_BASE_URL",
	"SIKUM_LLM_TRANSPORT",
	"SIKUM_LLM_REQUEST_TIMEOUT_SECONDS",
	"SIKUM_LLM_INCORRECT_ANSWER_COUNT",
	"SIKUM_TASK_WORKER_COUNT",
	"SIKUM_TASK_QUEUE_SIZE",
	"SIKUM_STUDY_ADVANCE_DELAY_MILLIS",
	"SIKUM_STUDY_MAX_SESSIONS",
}

// setupEnv clears every config variable and then applies envVars.
// t.Setenv restores the previous values when the test ends.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
	// Keep a developer's config.yaml or .env out of the test
	t.Chdir(t.TempDir())
}

// TestLoadDefaults verifies that the Load function sets the expected default values
// when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := Load()

	require.NoError(t, err, "Load() should succeed without any environment")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, int64(20<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.LLM.BaseURL)
	assert.Equal(t, "rest", cfg.LLM.Transport)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout())
	assert.Equal(t, 0, cfg.LLM.IncorrectAnswerCount)
	assert.Empty(t, cfg.LLM.GeminiAPIKey, "a missing key must not prevent startup")
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 1500*time.Millisecond, cfg.Study.AdvanceDelay())
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"SIKUM_SERVER_PORT":                "9090",
		"SIKUM_SERVER_LOG_LEVEL":           "debug",
		"SIKUM_LLM_GEMINI_API_KEY":         "test-api-key",
		"SIKUM_LLM_MODEL_NAME":             "gemini-test",
		"SIKUM_LLM_BASE_URL":               "http://localhost:9999",
		"SIKUM_LLM_TRANSPORT":              "sdk",
		"SIKUM_LLM_INCORRECT_ANSWER_COUNT": "3",
		"SIKUM_TASK_WORKER_COUNT":          "4",
		"SIKUM_STUDY_ADVANCE_DELAY_MILLIS": "250",
	})

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-test", cfg.LLM.ModelName)
	assert.Equal(t, "http://localhost:9999", cfg.LLM.BaseURL)
	assert.Equal(t, "sdk", cfg.LLM.Transport)
	assert.Equal(t, 3, cfg.LLM.IncorrectAnswerCount)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
	assert.Equal(t, 250*time.Millisecond, cfg.Study.AdvanceDelay())
}

// TestLoadGeminiAPIKeyFallback verifies the provider's conventional variable is honored.
func TestLoadGeminiAPIKeyFallback(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_API_KEY": "plain-key",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "plain-key", cfg.LLM.GeminiAPIKey)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"SIKUM_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"SIKUM_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "Unknown transport",
			envVars: map[string]string{"SIKUM_LLM_TRANSPORT": "grpc"},
		},
		{
			name:    "Base URL is not a URL",
			envVars: map[string]string{"SIKUM_LLM_BASE_URL": "not a url"},
		},
		{
			name:    "Negative distractor count",
			envVars: map[string]string{"SIKUM_LLM_INCORRECT_ANSWER_COUNT": "-1"},
		},
		{
			name:    "Zero workers",
			envVars: map[string]string{"SIKUM_TASK_WORKER_COUNT": "0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
