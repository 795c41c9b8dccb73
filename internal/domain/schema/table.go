package schema

import (
	"log/slog"
	"sync"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/query/indexing"
)

// Table represents a database table with its schema, rows, and its single
// optional secondary index
type Table struct {
	mu     sync.RWMutex
	Name   string
	Schema *TableSchema
	rows   *data.RowStore
	index  indexing.Manager
}

// NewTable creates an empty table with the given columns
func NewTable(name string, defs []ColumnDef) (*Table, error) {
	s, err := NewTableSchema(name, defs)
	if err != nil {
		return nil, err
	}
	return &Table{
		Name:   name,
		Schema: s,
		rows:   data.NewRowStore(),
	}, nil
}

// Lock acquires an exclusive lock on the table for write operations
func (t *Table) Lock() {
	t.mu.Lock()
}

// Unlock releases the exclusive lock
func (t *Table) Unlock() {
	t.mu.Unlock()
}

// RLock acquires a read lock on the table for read operations
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// ColumnIndex returns the position of the named column in O(1)
func (t *Table) ColumnIndex(name string) (int, error) {
	pos, ok := t.Schema.Lookup(name)
	if !ok {
		return -1, &errors.ColumnNotFoundError{TableName: t.Name, ColumnName: name}
	}
	return pos, nil
}

// Store exposes the row store. Callers must hold the table lock.
func (t *Table) Store() *data.RowStore {
	return t.rows
}

// IndexOn returns the live index if it covers column, otherwise nil.
// Callers must hold the table lock.
func (t *Table) IndexOn(column int) indexing.Index {
	return t.index.On(column)
}

// LiveIndex returns the live index or nil. Callers must hold the table lock.
func (t *Table) LiveIndex() indexing.Index {
	return t.index.Live()
}

// Len returns the current row count
func (t *Table) Len() int {
	t.RLock()
	defer t.RUnlock()
	return t.rows.Len()
}

// ValueAt returns the stored value at (row, column)
func (t *Table) ValueAt(row, column int) data.Value {
	t.RLock()
	defer t.RUnlock()
	return t.rows.ValueAt(row, column)
}

// InsertRows validates every row against the schema, appends them, and
// repairs the index. Returns the inserted position range [start, end).
// Nothing is stored if any row is rejected.
func (t *Table) InsertRows(rows []data.Row) (int, int, error) {
	t.Lock()
	defer t.Unlock()

	for i, row := range rows {
		if err := t.validateRow(row, i); err != nil {
			return 0, 0, err
		}
	}

	start, end := t.rows.Append(rows...)

	if err := t.index.Repair(t.rows); err != nil {
		return start, end, err
	}

	slog.Debug("rows inserted",
		slog.String("table", t.Name),
		slog.Int("start", start),
		slog.Int("end", end))

	return start, end, nil
}

// GenerateIndex builds an index of kind over the named column, replacing
// any existing index
func (t *Table) GenerateIndex(kind indexing.Kind, columnName string) (indexing.Index, error) {
	col, err := t.ColumnIndex(columnName)
	if err != nil {
		return nil, err
	}

	t.Lock()
	defer t.Unlock()

	return t.index.Generate(kind, t.rows, col)
}

// DeletePositionsUnsafe removes the rows at positions and repairs the index.
// IMPORTANT: Must be called while holding the write lock!
func (t *Table) DeletePositionsUnsafe(positions []int) (int, error) {
	removed := t.rows.DeletePositions(positions)
	if removed == 0 {
		return 0, nil
	}
	return removed, t.index.Repair(t.rows)
}

// DeleteFuncUnsafe removes every row matching pred and repairs the index.
// IMPORTANT: Must be called while holding the write lock!
func (t *Table) DeleteFuncUnsafe(pred func(data.Row) bool) (int, error) {
	removed := t.rows.DeleteFunc(pred)
	if removed == 0 {
		return 0, nil
	}
	return removed, t.index.Repair(t.rows)
}

// validateRow checks arity and per-column kinds
// Must be called while holding a lock
func (t *Table) validateRow(row data.Row, rowIndex int) error {
	if len(row) != t.Schema.Arity() {
		return errors.NewArityViolation(t.Name, t.Schema.Arity(), len(row), rowIndex)
	}
	for i, col := range t.Schema.Columns {
		if row[i].Kind() != col.Type {
			return errors.NewTypeMismatch("", t.Name, col.Name, row[i].Interface(), col.Type.String(), rowIndex)
		}
		if row[i].IsNaN() {
			return errors.NewNotANumber("", t.Name, col.Name, rowIndex)
		}
	}
	return nil
}

// CheckKind verifies that v can be compared against the named column.
// Filters and joins call it before any row is read.
func (t *Table) CheckKind(column int, v data.Value) error {
	col := t.Schema.Columns[column]
	if v.Kind() != col.Type {
		return errors.NewTypeMismatch("", t.Name, col.Name, v.Interface(), col.Type.String(), -1)
	}
	if v.IsNaN() {
		return errors.NewNotANumber("", t.Name, col.Name, -1)
	}
	return nil
}
