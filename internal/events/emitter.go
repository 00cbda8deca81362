package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// subscription pairs a handler with the event types it wants. An empty type
// list receives everything.
type subscription struct {
	handler EventHandler
	types   []string
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// SessionEventBus dispatches session events synchronously to its subscribers.
// A subscriber that fails or panics never prevents delivery to the others.
type SessionEventBus struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

var _ EventEmitter = (*SessionEventBus)(nil)

// NewSessionEventBus creates a bus with no subscribers.
func NewSessionEventBus(logger *slog.Logger) *SessionEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionEventBus{logger: logger.With("component", "session_event_bus")}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given.
func (b *SessionEventBus) Subscribe(handler EventHandler, types ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{handler: handler, types: slices.Clone(types)})
	b.logger.Debug("subscriber added",
		"subscriber_count", len(b.subs),
		"event_types", types)
}

// EmitEvent delivers event to every interested subscriber and returns the
// joined errors of those that failed.
func (b *SessionEventBus) EmitEvent(ctx context.Context, event *Event) error {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := deliver(ctx, sub.handler, event); err != nil {
			b.logger.ErrorContext(ctx, "subscriber failed to handle event",
				"error", err,
				"subscriber_index", i,
				"event_id", event.ID,
				"event_type", event.Type,
				"session_id", event.SessionID)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		b.logger.DebugContext(ctx, "event had no subscribers",
			"event_type", event.Type,
			"session_id", event.SessionID)
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, handler EventHandler, event *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return handler.HandleEvent(ctx, event)
}

// LogHandler records every event it receives as a structured log line.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "session_events")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	level := slog.LevelInfo
	if event.Type == TypeGenerationFailed {
		level = slog.LevelWarn
	}

	attrs := []any{
		"event_id", event.ID,
		"event_type", event.Type,
		"session_id", event.SessionID,
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, "payload", string(event.Payload))
	}

	h.logger.Log(ctx, level, "session event", attrs...)
	return nil
}
