package testutil

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/query/indexing"
)

// NewTable creates a table and inserts rows, failing the test on any error
func NewTable(t testing.TB, name string, defs []schema.ColumnDef, rows ...data.Row) *schema.Table {
	t.Helper()
	table, err := schema.NewTable(name, defs)
	assert.NilError(t, err)
	if len(rows) > 0 {
		_, _, err = table.InsertRows(rows)
		assert.NilError(t, err)
	}
	return table
}

// WithIndex generates an index on column and returns the table
func WithIndex(t testing.TB, table *schema.Table, kind indexing.Kind, column string) *schema.Table {
	t.Helper()
	_, err := table.GenerateIndex(kind, column)
	assert.NilError(t, err)
	return table
}

// CreateAgesTable creates the people table whose ages are [30, 20, 30, 10]
// in row order
func CreateAgesTable(t testing.TB) *schema.Table {
	return NewTable(t, "people",
		[]schema.ColumnDef{
			{Name: "name", Type: data.KindString},
			{Name: "age", Type: data.KindInt},
		},
		data.Row{data.String("ann"), data.Int(30)},
		data.Row{data.String("bob"), data.Int(20)},
		data.Row{data.String("cat"), data.Int(30)},
		data.Row{data.String("dan"), data.Int(10)},
	)
}

// CreateUsersTable creates a users table with sample data for testing
func CreateUsersTable(t testing.TB) *schema.Table {
	return NewTable(t, "users",
		[]schema.ColumnDef{
			{Name: "id", Type: data.KindInt},
			{Name: "username", Type: data.KindString},
			{Name: "active", Type: data.KindBool},
		},
		data.Row{data.Int(1), data.String("alice"), data.Bool(true)},
		data.Row{data.Int(2), data.String("bob"), data.Bool(false)},
		data.Row{data.Int(3), data.String("charlie"), data.Bool(true)},
	)
}

// CreateOrdersTable creates an orders table with sample data for testing.
// User 3 (charlie) has no orders; user 1 has two.
func CreateOrdersTable(t testing.TB) *schema.Table {
	return NewTable(t, "orders",
		[]schema.ColumnDef{
			{Name: "id", Type: data.KindInt},
			{Name: "user_id", Type: data.KindInt},
			{Name: "product", Type: data.KindString},
			{Name: "amount", Type: data.KindDouble},
		},
		data.Row{data.Int(1), data.Int(1), data.String("Laptop"), data.Double(999.99)},
		data.Row{data.Int(2), data.Int(1), data.String("Mouse"), data.Double(25.5)},
		data.Row{data.Int(3), data.Int(2), data.String("Keyboard"), data.Double(75)},
	)
}

// CreateTagTables creates A = [(1,"x"), (2,"y")] and B = [(2,"z"), (3,"w")],
// both with columns (id int, tag string)
func CreateTagTables(t testing.TB) (*schema.Table, *schema.Table) {
	defs := []schema.ColumnDef{
		{Name: "id", Type: data.KindInt},
		{Name: "tag", Type: data.KindString},
	}
	a := NewTable(t, "a", defs,
		data.Row{data.Int(1), data.String("x")},
		data.Row{data.Int(2), data.String("y")},
	)
	b := NewTable(t, "b", defs,
		data.Row{data.Int(2), data.String("z")},
		data.Row{data.Int(3), data.String("w")},
	)
	return a, b
}
