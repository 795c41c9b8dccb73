package engine

import (
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer.
// A nil logger means slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
// Start events are logged at debug level; failed commands at warn level
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		"event", event.Type,
		"command_id", event.CommandID,
		"command", event.Command,
		"table", event.Table,
	}

	switch {
	case event.Type == EventCommandStart:
		lo.logger.Debug("command_lifecycle", attrs...)
	case event.Err != nil:
		lo.logger.Warn("command_lifecycle",
			append(attrs, "duration", event.Duration, "error", event.Err)...)
	default:
		lo.logger.Info("command_lifecycle",
			append(attrs, "duration", event.Duration, "data", event.Data)...)
	}
}
