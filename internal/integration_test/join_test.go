package integration

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/planner"
)

const userOrdersJoin = "JOIN users AND orders WHERE id = user_id AND PRINT 3 username 1 product 2 amount 2\n"

const userOrdersOutput = "username product amount \n" +
	"alice Laptop 999.99 \n" +
	"alice Mouse 25.5 \n" +
	"bob Keyboard 75 \n" +
	"Printed 3 rows from joining users to orders\n"

// TestJoinOperations tests the join through every right-side strategy
func TestJoinOperations(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		cfg   *planner.ExecutionConfig
	}{
		{name: "temporary hash"},
		{name: "nested loop", cfg: &planner.ExecutionConfig{UseIndexes: true, JoinAlgorithm: planner.JoinAlgorithmNestedLoop}},
		{name: "hash index", setup: "GENERATE FOR orders hash INDEX ON user_id\n"},
		{name: "bst index", setup: "GENERATE FOR orders bst INDEX ON user_id\n"},
		{name: "index on other column", setup: "GENERATE FOR orders bst INDEX ON product\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := setupTestEngine(t, tt.cfg)
			if tt.setup != "" {
				runScript(t, eng, tt.setup, false)
			}

			assert.Equal(t, runScript(t, eng, userOrdersJoin, false), userOrdersOutput)
		})
	}
}

// TestJoinQuiet tests that quiet mode keeps the count
func TestJoinQuiet(t *testing.T) {
	eng := setupTestEngine(t, nil)

	out := runScript(t, eng, userOrdersJoin, true)
	assert.Equal(t, out, "Printed 3 rows from joining users to orders\n")
}

// TestJoinReversed tests joining from the side with duplicates
func TestJoinReversed(t *testing.T) {
	eng := setupTestEngine(t, nil)
	runScript(t, eng, "GENERATE FOR users hash INDEX ON id\n", false)

	out := runScript(t, eng, "JOIN orders AND users WHERE user_id = id AND PRINT 2 id 1 username 2\n", false)
	assert.Equal(t, out, "id username \n"+
		"1 alice \n"+
		"2 alice \n"+
		"3 bob \n"+
		"Printed 3 rows from joining orders to users\n")
}

// TestJoinErrors tests the validation order of JOIN
func TestJoinErrors(t *testing.T) {
	eng := setupTestEngine(t, nil)

	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "missing first table",
			script: "JOIN ghost AND spirit WHERE id = id AND PRINT 1 id 1\n",
			want:   "Error during JOIN: ghost does not name a table in the database",
		},
		{
			name:   "missing second table",
			script: "JOIN users AND spirit WHERE id = id AND PRINT 1 id 1\n",
			want:   "Error during JOIN: spirit does not name a table in the database",
		},
		{
			name:   "missing first column",
			script: "JOIN users AND orders WHERE uid = nope AND PRINT 1 id 1\n",
			want:   "Error during JOIN: uid does not name a column in users",
		},
		{
			name:   "missing second column",
			script: "JOIN users AND orders WHERE id = nope AND PRINT 1 id 1\n",
			want:   "Error during JOIN: nope does not name a column in orders",
		},
		{
			name:   "missing projected column",
			script: "JOIN users AND orders WHERE id = user_id AND PRINT 2 id 1 username 2\n",
			want:   "Error during JOIN: username does not name a column in orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, runScript(t, eng, tt.script, false), tt.want+"\n")
		})
	}
}
