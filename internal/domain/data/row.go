package data

import (
	"encoding/json"
	"slices"
)

// Row represents a single table row.
// Cells are ordered 1:1 with the table's columns.
type Row []Value

// Copy creates a copy of the row so callers cannot mutate stored data
func (r Row) Copy() Row {
	return slices.Clone(r)
}

// MarshalJSON encodes the row as a JSON array of plain values
func (r Row) MarshalJSON() ([]byte, error) {
	cells := make([]interface{}, len(r))
	for i, v := range r {
		cells[i] = v.Interface()
	}
	return json.Marshal(cells)
}

// RowStore is the dense, position-addressed row sequence of a table.
// A row's position is its only identity and shifts when an earlier row is
// deleted, so positions must never be held across a mutation.
type RowStore struct {
	rows []Row
}

// NewRowStore creates an empty store
func NewRowStore() *RowStore {
	return &RowStore{rows: make([]Row, 0)}
}

// Len returns the number of stored rows
func (s *RowStore) Len() int {
	return len(s.rows)
}

// At returns the row stored at pos
func (s *RowStore) At(pos int) Row {
	return s.rows[pos]
}

// ValueAt returns the cell at (pos, col)
func (s *RowStore) ValueAt(pos, col int) Value {
	return s.rows[pos][col]
}

// Append stores rows at the end and returns their position range [start, end)
func (s *RowStore) Append(rows ...Row) (start, end int) {
	start = len(s.rows)
	for _, r := range rows {
		s.rows = append(s.rows, r.Copy())
	}
	return start, len(s.rows)
}

// Each calls fn for every row in storage order until fn returns false
func (s *RowStore) Each(fn func(pos int, row Row) bool) {
	for pos, row := range s.rows {
		if !fn(pos, row) {
			return
		}
	}
}

// DeletePositions removes the rows at the given positions and returns how
// many were removed. Positions are processed largest first: removing a larger
// position never shifts a smaller one that is still pending.
func (s *RowStore) DeletePositions(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	pending := slices.Clone(positions)
	slices.SortFunc(pending, func(a, b int) int { return b - a })
	pending = slices.Compact(pending)

	removed := 0
	for _, pos := range pending {
		if pos < 0 || pos >= len(s.rows) {
			continue
		}
		s.rows = slices.Delete(s.rows, pos, pos+1)
		removed++
	}
	return removed
}

// DeleteFunc removes every row matching pred, preserving the order of the
// survivors, and returns the removed count
func (s *RowStore) DeleteFunc(pred func(Row) bool) int {
	before := len(s.rows)
	s.rows = slices.DeleteFunc(s.rows, pred)
	return before - len(s.rows)
}
