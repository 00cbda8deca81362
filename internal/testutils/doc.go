// Package testutils provides shared test helpers: a fake Gemini
// generateContent endpoint, question fixtures and an in-memory slog handler
// for asserting on log output.
//
// The fake provider is an httptest.Server, so tests exercise the real REST
// transport end to end:
//
//	provider := testutils.NewGeminiServer(t, testutils.RespondWithQuestions(questions...))
//	cfg.LLM.BaseURL = provider.URL
package testutils
