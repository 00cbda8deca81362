// Package gemini provides an implementation of the generation.Generator interface
// backed by Google's Gemini generateContent endpoint.
//
// This package is an infrastructure adapter: it connects the study service to
// the external model without exposing the provider's wire format to the rest
// of the application.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.Generator interface
//   - Checks for an API key before any network call
//   - Normalizes the excerpt, builds the prompt and runs the decode gates
//
// 2. Transports:
//   - restTransport posts JSON to {base}/v1beta/models/{model}:generateContent?key=...
//   - sdkTransport performs the same call through google.golang.org/genai
//
// 3. Error Handling:
//   - Envelope and status failures map to generation.ErrInvalidResponse
//   - Every failure after the key check is re-raised through generation.Wrap
//   - Request URLs and errors are redacted before they are logged
package gemini
