package engine

import (
	"time"

	"github.com/leengari/sillyql/internal/domain/command"
)

// EventType represents the lifecycle phases of an engine command
type EventType string

const (
	EventCommandStart EventType = "command_start"
	EventCommandEnd   EventType = "command_end"
)

// Event represents a lifecycle event of one engine command
type Event struct {
	Type      EventType     // Type of event
	CommandID string        // Command ID for tracing
	Command   command.Kind  // Which command produced the event
	Table     string        // Primary table of the command
	Timestamp time.Time     // When the event occurred
	Duration  time.Duration // Set on EventCommandEnd
	Data      interface{}   // Phase-specific data (e.g., row counts)
	Err       error         // Set on EventCommandEnd when the command failed
}

// Observer interface for event subscribers
// Observers receive events at the start and end of every command
type Observer interface {
	OnEvent(event Event)
}
