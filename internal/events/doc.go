// Package events provides types and interfaces for study session events.
//
// Services emit events without knowing which handlers will process them.
// The study service reports document uploads and the generation lifecycle
// here; the server registers a handler that records them in the log.
//
// The primary components are:
// - Event: Something that happened to a study session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - SessionEventBus: EventEmitter with per-type subscriptions
package events
