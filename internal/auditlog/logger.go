package auditlog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger is an in-memory, zerolog-backed audit trail. It buffers the most
// recent events up to maxSize and mirrors every event to its injected
// zerolog.Logger.
type Logger struct {
	mu      sync.RWMutex
	events  []Event
	maxSize int
	logger  zerolog.Logger
}

// New creates a Logger that retains up to maxSize events in memory
// (0 defaults to 1000) and mirrors each to logger.
func New(logger zerolog.Logger, maxSize int) *Logger {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Logger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
		logger:  logger.With().Str("component", "auditlog").Logger(),
	}
}

// Log records event, filling in ID, Timestamp, and Severity when unset.
func (l *Logger) Log(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Severity == "" {
		event.Severity = DefaultSeverity(event.Type)
	}

	l.mu.Lock()
	if len(l.events) >= l.maxSize {
		l.events = l.events[1:]
	}
	l.events = append(l.events, event)
	l.mu.Unlock()

	l.emit(event)
	return event
}

func (l *Logger) emit(event Event) {
	zle := l.logger.Info()
	switch event.Severity {
	case SeverityCritical:
		zle = l.logger.Error()
	case SeverityWarning:
		zle = l.logger.Warn()
	}
	zle.
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("did", event.Did).
		Str("actor", event.Actor).
		Interface("details", event.Details).
		Time("timestamp", event.Timestamp).
		Msg("audit event")
}

// Events returns a snapshot of the buffered events, oldest first.
func (l *Logger) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
