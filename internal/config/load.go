package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SIKUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key has no default, so it must be bound explicitly for Unmarshal to
	// see it. GEMINI_API_KEY is accepted for parity with the provider's docs.
	if err := v.BindEnv("llm.gemini_api_key", "SIKUM_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.GeminiAPIKey = resolveAPIKey(cfg.LLM.GeminiAPIKey)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// setDefaults registers a default for every key so AutomaticEnv can override
// it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_upload_bytes", 20<<20)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("llm.transport", "rest")
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.incorrect_answer_count", 0)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 32)

	v.SetDefault("study.advance_delay_millis", 1500)
	v.SetDefault("study.max_sessions", 1000)
}
