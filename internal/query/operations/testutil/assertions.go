package testutil

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/domain/data"
)

// AssertRowCount checks the reported count and, when rows were
// materialized, that they agree with it
func AssertRowCount(t *testing.T, result *data.ResultSet, expected int, context string) {
	t.Helper()
	assert.Equal(t, result.Count, expected, "%s: count", context)
	if result.Rows != nil {
		assert.Equal(t, len(result.Rows), expected, "%s: materialized rows", context)
	}
}

// AssertColumnCount checks if a row has the expected number of columns
func AssertColumnCount(t *testing.T, row data.Row, expected int, context string) {
	t.Helper()
	assert.Equal(t, len(row), expected, "%s: columns", context)
}

// Column renders one output column of a result, top to bottom
func Column(result *data.ResultSet, col int) []string {
	out := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		out[i] = row[col].String()
	}
	return out
}

// AssertColumn checks one output column of a result in order
func AssertColumn(t *testing.T, result *data.ResultSet, col int, expected ...string) {
	t.Helper()
	assert.DeepEqual(t, Column(result, col), expected)
}

// StoreColumn renders one column of a table's stored rows in storage order
func StoreColumn(store *data.RowStore, col int) []string {
	out := make([]string, 0, store.Len())
	store.Each(func(_ int, row data.Row) bool {
		out = append(out, row[col].String())
		return true
	})
	return out
}
