//go:build !release

package config

import "github.com/joho/godotenv"

// loadDotEnv loads a .env file from the working directory if one exists.
// Development builds only.
func loadDotEnv() {
	_ = godotenv.Load()
}

// resolveAPIKey returns the key read from the environment.
func resolveAPIKey(fromEnv string) string {
	return fromEnv
}
