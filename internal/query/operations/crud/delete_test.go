package crud_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/indexing"
	"github.com/leengari/sillyql/internal/query/operations/crud"
	"github.com/leengari/sillyql/internal/query/operations/testutil"
)

func numbersTable(t *testing.T, n int) *schema.Table {
	rows := make([]data.Row, n)
	for i := range rows {
		rows[i] = data.Row{data.Int(int64(i))}
	}
	return testutil.NewTable(t, "numbers", []schema.ColumnDef{{Name: "n", Type: data.KindInt}}, rows...)
}

func TestDeleteByFilter(t *testing.T) {
	tests := []struct {
		name    string
		index   indexing.Kind
		filter  crud.Filter
		deleted int
		left    []string
	}{
		{"scan equal", 0, crud.Filter{Column: "age", Op: planner.OpEqual, Value: data.Int(30)}, 2, []string{"bob", "dan"}},
		{"scan less", 0, crud.Filter{Column: "age", Op: planner.OpLess, Value: data.Int(25)}, 2, []string{"ann", "cat"}},
		{"hash greater", indexing.KindHash, crud.Filter{Column: "age", Op: planner.OpGreater, Value: data.Int(10)}, 3, []string{"dan"}},
		{"hash equal", indexing.KindHash, crud.Filter{Column: "age", Op: planner.OpEqual, Value: data.Int(20)}, 1, []string{"ann", "cat", "dan"}},
		{"ordered less", indexing.KindOrdered, crud.Filter{Column: "age", Op: planner.OpLess, Value: data.Int(30)}, 2, []string{"ann", "cat"}},
		{"ordered no match", indexing.KindOrdered, crud.Filter{Column: "age", Op: planner.OpGreater, Value: data.Int(30)}, 0, []string{"ann", "bob", "cat", "dan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testutil.CreateAgesTable(t)
			if tt.index != 0 {
				testutil.WithIndex(t, table, tt.index, "age")
			}

			deleted, err := crud.Delete(table, tt.filter, crud.Options{})
			assert.NilError(t, err)
			assert.Equal(t, deleted, tt.deleted)
			assert.DeepEqual(t, testutil.StoreColumn(table.Store(), 0), tt.left)
		})
	}
}

// Survivors must keep their relative order whichever way the rows go
func TestDeletePositionsKeepsOrder(t *testing.T) {
	table := numbersTable(t, 10)

	deleted, err := crud.DeletePositions(table, []int{5, 2, 7})
	assert.NilError(t, err)
	assert.Equal(t, deleted, 3)
	assert.DeepEqual(t, testutil.StoreColumn(table.Store(), 0), []string{"0", "1", "3", "4", "6", "8", "9"})
}

func TestDeleteRepairsIndex(t *testing.T) {
	for _, kind := range []indexing.Kind{indexing.KindHash, indexing.KindOrdered} {
		t.Run(kind.String(), func(t *testing.T) {
			table := testutil.WithIndex(t, testutil.CreateAgesTable(t), kind, "age")

			_, err := crud.Delete(table, crud.Filter{Column: "age", Op: planner.OpEqual, Value: data.Int(30)}, crud.Options{})
			assert.NilError(t, err)

			idx := table.LiveIndex()
			assert.Assert(t, idx != nil)
			assert.Equal(t, idx.Keys(), 2)
			assert.Assert(t, idx.Lookup(data.Int(30)) == nil)
			// bob moved from 1 to 0, dan from 3 to 1
			assert.DeepEqual(t, idx.Lookup(data.Int(20)), []int{0})
			assert.DeepEqual(t, idx.Lookup(data.Int(10)), []int{1})
		})
	}
}

func TestDeleteFailsBeforeTouchingRows(t *testing.T) {
	table := testutil.WithIndex(t, testutil.CreateAgesTable(t), indexing.KindHash, "age")

	_, err := crud.Delete(table, crud.Filter{Column: "height", Op: planner.OpEqual, Value: data.Int(1)}, crud.Options{})
	assert.ErrorContains(t, err, "height does not name a column in people")

	_, err = crud.Delete(table, crud.Filter{Column: "age", Op: planner.OpLess, Value: data.Double(1)}, crud.Options{})
	assert.ErrorContains(t, err, "type_mismatch")

	assert.Equal(t, table.Len(), 4)
}

func TestDeleteAllThenInsert(t *testing.T) {
	table := testutil.WithIndex(t, testutil.CreateAgesTable(t), indexing.KindOrdered, "age")

	deleted, err := crud.Delete(table, crud.Filter{Column: "age", Op: planner.OpGreater, Value: data.Int(0)}, crud.Options{})
	assert.NilError(t, err)
	assert.Equal(t, deleted, 4)
	assert.Equal(t, table.Len(), 0)
	assert.Equal(t, table.LiveIndex().Keys(), 0)

	start, end, err := table.InsertRows([]data.Row{{data.String("eve"), data.Int(40)}})
	assert.NilError(t, err)
	assert.Equal(t, start, 0)
	assert.Equal(t, end, 1)
	assert.DeepEqual(t, table.LiveIndex().Lookup(data.Int(40)), []int{0})
}

func TestDeleteWithoutIndexesConfigured(t *testing.T) {
	table := testutil.WithIndex(t, testutil.CreateAgesTable(t), indexing.KindHash, "age")
	cfg := &planner.ExecutionConfig{UseIndexes: false, JoinAlgorithm: planner.JoinAlgorithmHash}

	deleted, err := crud.Delete(table, crud.Filter{Column: "age", Op: planner.OpLess, Value: data.Int(30)}, crud.Options{Config: cfg})
	assert.NilError(t, err)
	assert.Equal(t, deleted, 2)

	// the index is still repaired even though it was not used
	assert.DeepEqual(t, table.LiveIndex().Lookup(data.Int(30)), []int{0, 1})
}
