package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
	Study  StudyConfig  `mapstructure:"study"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// MaxUploadBytes caps the size of an uploaded document.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey may be empty; generation then fails with an
	// authentication error instead of preventing startup.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	BaseURL      string `mapstructure:"base_url"   validate:"required,url"`
	// Transport selects the REST client ("rest") or the genai SDK ("sdk").
	Transport             string `mapstructure:"transport"               validate:"required,oneof=rest sdk"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	// IncorrectAnswerCount, when positive, rejects questions that do not carry
	// exactly this many incorrect answers. Zero tolerates any count.
	IncorrectAnswerCount int `mapstructure:"incorrect_answer_count" validate:"gte=0"`
}

// RequestTimeout returns the per-request timeout, zero meaning none.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TaskConfig contains settings for the background generation runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}

// StudyConfig contains settings for study sessions.
type StudyConfig struct {
	// AdvanceDelayMillis is the pause clients show after a quiz answer
	// before moving to the next question.
	AdvanceDelayMillis int `mapstructure:"advance_delay_millis" validate:"gte=0"`
	MaxSessions        int `mapstructure:"max_sessions"         validate:"required,gt=0"`
}

// AdvanceDelay returns the quiz advance delay as a duration.
func (c StudyConfig) AdvanceDelay() time.Duration {
	return time.Duration(c.AdvanceDelayMillis) * time.Millisecond
}
