//go:build release

package config

// ReleaseGeminiAPIKey is injected at build time:
//
//	go build -tags release -ldflags "-X github.com/sikum-app/sikum-api/internal/config.ReleaseGeminiAPIKey=..."
var ReleaseGeminiAPIKey string

// loadDotEnv is a no-op in release builds.
func loadDotEnv() {}

// resolveAPIKey ignores the environment and returns the build-time key.
func resolveAPIKey(string) string {
	return ReleaseGeminiAPIKey
}
