package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/engine"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/repl"
)

// setupScript creates the users and orders tables used across the suite.
// Charlie (3) has no orders; alice (1) has two.
const setupScript = `CREATE users 3 int string bool id username active
INSERT INTO users 3 ROWS
1 alice true
2 bob false
3 charlie true
CREATE orders 4 int int string double id user_id product amount
INSERT INTO orders 3 ROWS
1 1 Laptop 999.99
2 1 Mouse 25.5
3 2 Keyboard 75
`

// setupTestEngine returns an engine holding the users and orders tables
func setupTestEngine(t *testing.T, cfg *planner.ExecutionConfig) *engine.Engine {
	t.Helper()
	eng := engine.New(nil, cfg)
	out := runScript(t, eng, setupScript, false)
	assert.Assert(t, !strings.Contains(out, "Error"), out)
	return eng
}

// runScript runs script through a prompt-less session and returns its output
func runScript(t *testing.T, eng *engine.Engine, script string, quiet bool) string {
	t.Helper()
	var out bytes.Buffer
	session := repl.NewSession(eng, strings.NewReader(script), &out, repl.Options{Quiet: quiet, NoPrompt: true})
	assert.NilError(t, session.Run(context.Background()))
	return out.String()
}

// lastLine returns the final non-empty output line
func lastLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	return lines[len(lines)-1]
}

// MockObserver records every event it receives
type MockObserver struct {
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.Events = append(m.Events, event)
}
