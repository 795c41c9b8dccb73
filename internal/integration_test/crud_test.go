package integration

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/indexing"
	"github.com/leengari/sillyql/internal/query/operations/crud"
)

// TestCRUDOperations tests the command cycle against a fresh engine
func TestCRUDOperations(t *testing.T) {
	eng := setupTestEngine(t, nil)

	t.Run("PrintAll", func(t *testing.T) {
		out := runScript(t, eng, "PRINT FROM users 2 username id ALL\n", false)
		assert.Equal(t, out, "username id \n"+
			"alice 1 \n"+
			"bob 2 \n"+
			"charlie 3 \n"+
			"Printed 3 matching rows from users\n")
	})

	t.Run("PrintWhereDouble", func(t *testing.T) {
		out := runScript(t, eng, "PRINT FROM orders 2 product amount WHERE amount > 50\n", false)
		assert.Equal(t, out, "product amount \n"+
			"Laptop 999.99 \n"+
			"Keyboard 75 \n"+
			"Printed 2 matching rows from orders\n")
	})

	t.Run("PrintWhereBool", func(t *testing.T) {
		out := runScript(t, eng, "PRINT FROM users 1 username WHERE active = false\n", false)
		assert.Equal(t, out, "username \nbob \nPrinted 1 matching rows from users\n")
	})

	t.Run("DeleteThenPrint", func(t *testing.T) {
		out := runScript(t, eng, "DELETE FROM orders WHERE product = Mouse\nPRINT FROM orders 1 id ALL\n", true)
		assert.Equal(t, out, "Deleted 1 rows from orders\nPrinted 2 matching rows from orders\n")
	})

	t.Run("InsertContinuesPositions", func(t *testing.T) {
		out := runScript(t, eng, "INSERT INTO orders 2 ROWS\n4 3 Monitor 180\n5 3 Cable 9.5\n", false)
		assert.Equal(t, out, "Added 2 rows to orders from position 2 to 3\n")
	})
}

// TestIndexEquivalenceThroughProtocol runs the same queries with no index,
// a hash index and an ordered index. Counts must agree; only ordered ranges
// may change the row order.
func TestIndexEquivalenceThroughProtocol(t *testing.T) {
	queries := []string{
		"PRINT FROM orders 1 product WHERE user_id = 1\n",
		"PRINT FROM orders 1 product WHERE user_id < 2\n",
		"PRINT FROM orders 1 product WHERE user_id > 0\n",
		"PRINT FROM orders 1 product WHERE user_id > 5\n",
	}

	baseline := setupTestEngine(t, nil)
	want := make([]string, len(queries))
	for i, q := range queries {
		want[i] = lastLine(runScript(t, baseline, q, true))
	}

	for _, kind := range []string{"hash", "bst"} {
		t.Run(kind, func(t *testing.T) {
			eng := setupTestEngine(t, nil)
			runScript(t, eng, fmt.Sprintf("GENERATE FOR orders %s INDEX ON user_id\n", kind), false)

			for i, q := range queries {
				assert.Equal(t, lastLine(runScript(t, eng, q, true)), want[i], q)
			}
		})
	}
}

// TestDeleteAllRoundTrip empties a table through an index and refills it
func TestDeleteAllRoundTrip(t *testing.T) {
	eng := setupTestEngine(t, nil)

	out := runScript(t, eng, `GENERATE FOR users bst INDEX ON id
DELETE FROM users WHERE id > 0
PRINT FROM users 1 username WHERE id = 2
INSERT INTO users 1 ROWS
2 dora false
PRINT FROM users 1 username WHERE id = 2
`, false)

	assert.Equal(t, out, "Created bst index for table users on column id\n"+
		"Deleted 3 rows from users\n"+
		"username \n"+
		"Printed 0 matching rows from users\n"+
		"Added 1 rows to users from position 0 to 0\n"+
		"username \n"+
		"dora \n"+
		"Printed 1 matching rows from users\n")
}

// TestEngineAPIWithoutIndexes drives the façade directly with indexes
// disabled by configuration
func TestEngineAPIWithoutIndexes(t *testing.T) {
	eng := setupTestEngine(t, &planner.ExecutionConfig{UseIndexes: false, JoinAlgorithm: planner.JoinAlgorithmNestedLoop})
	assert.NilError(t, eng.GenerateIndex("users", indexing.KindHash, "id"))

	result, err := eng.Scan("users", []string{"username"}, &crud.Filter{Column: "id", Op: planner.OpGreater, Value: data.Int(1)}, false)
	assert.NilError(t, err)
	assert.Equal(t, result.Count, 2)
	assert.Equal(t, result.Rows[0][0], data.String("bob"))

	deleted, err := eng.DeleteWhere("users", crud.Filter{Column: "active", Op: planner.OpEqual, Value: data.Bool(true)})
	assert.NilError(t, err)
	assert.Equal(t, deleted, 2)

	info, err := eng.Describe("users")
	assert.NilError(t, err)
	assert.Equal(t, info.Rows, 1)
	assert.Equal(t, info.Index, "hash")
	assert.Equal(t, info.IndexColumn, "id")
}
