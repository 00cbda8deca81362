// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config file and, in development
// builds, a .env file. It provides type-safe access to the settings needed by
// the server, the language model adapter and the study service.
package config
