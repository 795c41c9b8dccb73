package command

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers commands in the order they were issued
var seqCounter uint64

// Kind identifies the protocol command an engine call belongs to.
// It is carried by errors and lifecycle events so the collaborator can
// render "Error during <KIND>" messages.
type Kind string

const (
	KindCreate   Kind = "CREATE"
	KindInsert   Kind = "INSERT"
	KindPrint    Kind = "PRINT"
	KindRemove   Kind = "REMOVE"
	KindDelete   Kind = "DELETE"
	KindGenerate Kind = "GENERATE"
	KindJoin     Kind = "JOIN"
	KindQuit     Kind = "QUIT"
	KindUnknown  Kind = "UNKNOWN"
)

// Context describes one engine command for tracing
type Context struct {
	ID        string    // Unique command identifier (UUID)
	Seq       uint64    // Monotonic sequence number within the process
	Kind      Kind      // Which command is running
	Table     string    // Primary table the command targets
	StartTime time.Time // When the command began
	EndTime   time.Time
}

// New creates a command context with a fresh ID
func New(kind Kind, table string) *Context {
	return &Context{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Kind:      kind,
		Table:     table,
		StartTime: time.Now(),
	}
}

// Finish records the end time and returns the elapsed duration
func (c *Context) Finish() time.Duration {
	c.EndTime = time.Now()
	return c.EndTime.Sub(c.StartTime)
}
