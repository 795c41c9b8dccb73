package planner

import (
	"fmt"
	"slices"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/query/indexing"
)

// Operator is a filter comparison
type Operator string

const (
	OpEqual   Operator = "="
	OpLess    Operator = "<"
	OpGreater Operator = ">"
)

// ParseOperator accepts "=", "<" or ">"
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case OpEqual, OpLess, OpGreater:
		return Operator(s), nil
	}
	return "", fmt.Errorf("unknown operator %q", s)
}

// Matches reports whether cell <op> v holds
func (op Operator) Matches(cell, v data.Value) bool {
	switch op {
	case OpEqual:
		return cell.Equal(v)
	case OpLess:
		return cell.Less(v)
	case OpGreater:
		return v.Less(cell)
	}
	return false
}

// Strategy returns the positions of the rows matching (column op v), in the
// order they must be emitted. Callers must hold the table lock, and the
// positions are only valid until the table is next mutated.
type Strategy func(t *schema.Table, column int, v data.Value) []int

type decisionKey struct {
	path AccessPath
	op   Operator
}

// decisionTable maps every (access path, operator) pair to its strategy.
// Hash and ordered ranges stay separate: a hash range is re-sorted by row
// position, an ordered range is emitted in key order.
var decisionTable = map[decisionKey]Strategy{
	{AccessHash, OpEqual}:   hashLookup,
	{AccessHash, OpLess}:    hashRange(OpLess),
	{AccessHash, OpGreater}: hashRange(OpGreater),

	{AccessOrdered, OpEqual}:   orderedLookup,
	{AccessOrdered, OpLess}:    orderedLess,
	{AccessOrdered, OpGreater}: orderedGreater,

	{AccessFullScan, OpEqual}:   fullScan(OpEqual),
	{AccessFullScan, OpLess}:    fullScan(OpLess),
	{AccessFullScan, OpGreater}: fullScan(OpGreater),
}

// Dispatch returns the strategy for an access path and operator
func Dispatch(path AccessPath, op Operator) (Strategy, error) {
	s, ok := decisionTable[decisionKey{path, op}]
	if !ok {
		return nil, fmt.Errorf("no strategy for %s with operator %q", path, op)
	}
	return s, nil
}

func hashLookup(t *schema.Table, column int, v data.Value) []int {
	idx := t.IndexOn(column).(*indexing.HashIndex)
	return slices.Clone(idx.Lookup(v))
}

// hashRange visits every bucket (a hash index has no key order) and sorts
// the collected positions so results come out in row order
func hashRange(op Operator) Strategy {
	return func(t *schema.Table, column int, v data.Value) []int {
		idx := t.IndexOn(column).(*indexing.HashIndex)
		var positions []int
		idx.Each(func(key data.Value, rows []int) {
			if op.Matches(key, v) {
				positions = append(positions, rows...)
			}
		})
		slices.Sort(positions)
		return positions
	}
}

func orderedLookup(t *schema.Table, column int, v data.Value) []int {
	idx := t.IndexOn(column).(*indexing.OrderedIndex)
	return slices.Clone(idx.Lookup(v))
}

func orderedLess(t *schema.Table, column int, v data.Value) []int {
	idx := t.IndexOn(column).(*indexing.OrderedIndex)
	var positions []int
	idx.AscendLess(v, func(_ data.Value, rows []int) bool {
		positions = append(positions, rows...)
		return true
	})
	return positions
}

func orderedGreater(t *schema.Table, column int, v data.Value) []int {
	idx := t.IndexOn(column).(*indexing.OrderedIndex)
	var positions []int
	idx.AscendGreater(v, func(_ data.Value, rows []int) bool {
		positions = append(positions, rows...)
		return true
	})
	return positions
}

func fullScan(op Operator) Strategy {
	return func(t *schema.Table, column int, v data.Value) []int {
		var positions []int
		t.Store().Each(func(pos int, row data.Row) bool {
			if op.Matches(row[column], v) {
				positions = append(positions, pos)
			}
			return true
		})
		return positions
	}
}
