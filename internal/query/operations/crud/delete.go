package crud

import (
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
)

// Delete removes rows matching the filter.
// Returns number of rows deleted.
// Access path selection is shared with Select; index paths remove the
// matched positions largest first, the full scan compacts in one pass.
// The index is rebuilt before the write lock is released.
func Delete(table *schema.Table, filter Filter, opts Options) (int, error) {
	// Acquire write lock for the entire operation
	table.Lock()
	defer table.Unlock()

	plan, err := planFilter(table, filter, opts.Config)
	if err != nil {
		return 0, err
	}

	var deleted int
	if plan.path == planner.AccessFullScan {
		col := plan.column
		deleted, err = table.DeleteFuncUnsafe(func(row data.Row) bool {
			return filter.Op.Matches(row[col], filter.Value)
		})
	} else {
		positions := plan.strategy(table, plan.column, filter.Value)
		deleted, err = table.DeletePositionsUnsafe(positions)
	}
	if err != nil {
		slog.Error("failed to rebuild index after delete",
			slog.String("table", table.Name),
			slog.Int("deleted", deleted),
			slog.Any("error", err),
		)
		return deleted, err
	}

	slog.Debug("delete completed",
		slog.String("table", table.Name),
		slog.String("column", filter.Column),
		slog.String("op", string(filter.Op)),
		slog.String("access_path", plan.path.String()),
		slog.Int("deleted", deleted),
	)

	return deleted, nil
}

// DeletePositions removes rows by position. Positions are taken relative to
// the table's current contents and processed in descending order.
func DeletePositions(table *schema.Table, positions []int) (int, error) {
	table.Lock()
	defer table.Unlock()

	return table.DeletePositionsUnsafe(positions)
}
