// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between HTTP clients and the
// study service: sessions, document upload, question generation and the
// flashcard and quiz walkers.
package api
