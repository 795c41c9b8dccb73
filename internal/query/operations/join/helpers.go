package join

import (
	"fmt"
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/indexing"
)

// validateJoinCondition resolves both join columns and checks that their
// kinds agree, so the probe never compares values of different kinds
func validateJoinCondition(
	leftTable *schema.Table,
	rightTable *schema.Table,
	leftColumn string,
	rightColumn string,
) (int, int, error) {
	if leftTable == nil {
		return 0, 0, fmt.Errorf("left table is nil")
	}
	if rightTable == nil {
		return 0, 0, fmt.Errorf("right table is nil")
	}

	leftCol, err := leftTable.ColumnIndex(leftColumn)
	if err != nil {
		return 0, 0, err
	}
	rightCol, err := rightTable.ColumnIndex(rightColumn)
	if err != nil {
		return 0, 0, err
	}

	leftType := leftTable.Schema.Columns[leftCol].Type
	rightType := rightTable.Schema.Columns[rightCol].Type
	if leftType != rightType {
		return 0, 0, errors.NewTypeMismatch("", rightTable.Name, rightColumn, nil,
			fmt.Sprintf("%s to match %s.%s", leftType, leftTable.Name, leftColumn), -1)
	}

	return leftCol, rightCol, nil
}

// matcher returns the right-side row positions whose join value equals v,
// in the order they must be emitted
type matcher func(v data.Value) []int

// buildMatcher creates the right-side probe for the chosen strategy.
// A live index is reused as is; otherwise a temporary hash index is built
// for this join only and never attached to the table.
func buildMatcher(strategy planner.JoinStrategy, table *schema.Table, column int) matcher {
	switch strategy {
	case planner.JoinProbeOrdered, planner.JoinProbeHash:
		// Buckets list positions in ascending row order, which is the
		// required emission order for both index kinds at equality.
		idx := table.IndexOn(column)
		slog.Debug("Reusing existing index",
			slog.String("table", table.Name),
			slog.String("kind", idx.Kind().String()))
		return idx.Lookup

	case planner.JoinNestedLoop:
		store := table.Store()
		return func(v data.Value) []int {
			var positions []int
			store.Each(func(pos int, row data.Row) bool {
				if row[column].Equal(v) {
					positions = append(positions, pos)
				}
				return true
			})
			return positions
		}

	default:
		tmp := indexing.BuildTemporaryHash(table.Store(), column)
		slog.Debug("Built temporary index",
			slog.String("table", table.Name),
			slog.Int("column", column),
			slog.Int("unique_values", tmp.Keys()))
		return tmp.Lookup
	}
}

// lockPair read-locks both tables in name order (once for a self-join)
// and returns the matching unlock
func lockPair(left, right *schema.Table) func() {
	if left == right {
		left.RLock()
		return left.RUnlock
	}
	first, second := left, right
	if second.Name < first.Name {
		first, second = second, first
	}
	first.RLock()
	second.RLock()
	return func() {
		second.RUnlock()
		first.RUnlock()
	}
}
