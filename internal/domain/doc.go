// Package domain contains the core study entities: trivia questions generated
// from a document and the lifecycle value that tracks a generation request.
// It has no knowledge of HTTP, the language model provider, or how text was
// extracted from the source document.
package domain
