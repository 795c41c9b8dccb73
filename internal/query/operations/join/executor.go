package join

import (
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/operations/projection"
)

// ExecuteJoin performs an INNER equi-join of leftTable and rightTable.
//
// Left rows are visited in storage order. Each left row is probed against
// the right table and contributes one output row per matching right row,
// right matches in ascending row order. The reported count is exact whether
// or not rows are materialized.
func ExecuteJoin(
	leftTable *schema.Table,
	rightTable *schema.Table,
	leftColumn string,
	rightColumn string,
	proj *projection.Projection,
	opts Options,
) (*data.ResultSet, error) {
	if leftTable == nil || rightTable == nil {
		_, _, err := validateJoinCondition(leftTable, rightTable, leftColumn, rightColumn)
		return nil, err
	}

	// Acquire read locks on both tables
	unlock := lockPair(leftTable, rightTable)
	defer unlock()

	leftCol, rightCol, err := validateJoinCondition(leftTable, rightTable, leftColumn, rightColumn)
	if err != nil {
		return nil, err
	}

	proj, err = projection.ValidateJoin(leftTable, rightTable, proj)
	if err != nil {
		return nil, err
	}

	slog.Debug("Starting INNER JOIN",
		slog.String("left_table", leftTable.Name),
		slog.String("right_table", rightTable.Name),
		slog.String("left_column", leftColumn),
		slog.String("right_column", rightColumn),
		slog.Int("left_rows", leftTable.Store().Len()),
		slog.Int("right_rows", rightTable.Store().Len()),
	)

	strategy := planner.SelectJoinStrategy(rightTable, rightCol, opts.Config)
	probe := buildMatcher(strategy, rightTable, rightCol)

	result := &data.ResultSet{Columns: proj.Headers()}
	leftStore, rightStore := leftTable.Store(), rightTable.Store()

	// Probe left table and combine matches
	leftStore.Each(func(leftPos int, leftRow data.Row) bool {
		rightPositions := probe(leftRow[leftCol])
		if len(rightPositions) == 0 {
			return true // No matches (INNER JOIN excludes)
		}

		result.Count += len(rightPositions)
		if opts.Quiet {
			return true
		}

		for _, rightPos := range rightPositions {
			joined := data.JoinedRow{
				LeftPos:  leftPos,
				RightPos: rightPos,
				Left:     leftRow,
				Right:    rightStore.At(rightPos),
			}
			result.Rows = append(result.Rows, projection.ProjectJoinedRow(joined, proj))
		}
		return true
	})

	slog.Info("INNER JOIN completed",
		slog.String("left_table", leftTable.Name),
		slog.String("right_table", rightTable.Name),
		slog.String("strategy", strategy.String()),
		slog.Int("result_rows", result.Count),
	)

	return result, nil
}
