package crud

import (
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/operations/projection"
)

// Filter is a single-column predicate: Column Op Value
type Filter struct {
	Column string
	Op     planner.Operator
	Value  data.Value
}

// Options tune how a scan runs
type Options struct {
	Config *planner.ExecutionConfig
	// Quiet skips row materialization. Counts are unaffected.
	Quiet bool
}

// matchPlan is a resolved filter: column position, access path and strategy
type matchPlan struct {
	column   int
	path     planner.AccessPath
	strategy planner.Strategy
}

// planFilter validates the filter and picks its strategy before any row is
// read. Callers must hold the table lock.
func planFilter(table *schema.Table, f Filter, cfg *planner.ExecutionConfig) (*matchPlan, error) {
	col, err := table.ColumnIndex(f.Column)
	if err != nil {
		return nil, err
	}
	if err := table.CheckKind(col, f.Value); err != nil {
		return nil, err
	}

	path := planner.ResolveAccessPath(table, col, cfg)
	strategy, err := planner.Dispatch(path, f.Op)
	if err != nil {
		return nil, err
	}
	return &matchPlan{column: col, path: path, strategy: strategy}, nil
}

// SelectAll returns every row of the table with column projection
func SelectAll(table *schema.Table, proj *projection.Projection, opts Options) (*data.ResultSet, error) {
	return Select(table, proj, nil, opts)
}

// Select returns the rows matching filter (all rows when filter is nil),
// projected to proj (all columns when proj is nil).
// Index-backed equality and ordered-range results come out in index order;
// every other path returns rows in storage order.
func Select(table *schema.Table, proj *projection.Projection, filter *Filter, opts Options) (*data.ResultSet, error) {
	table.RLock()
	defer table.RUnlock()

	proj, err := projection.Validate(table, proj)
	if err != nil {
		return nil, err
	}

	result := &data.ResultSet{Columns: proj.Headers()}
	store := table.Store()

	if filter == nil {
		result.Count = store.Len()
		if !opts.Quiet {
			result.Rows = make([]data.Row, 0, store.Len())
			store.Each(func(_ int, row data.Row) bool {
				result.Rows = append(result.Rows, projection.ProjectRow(row, proj))
				return true
			})
		}
		return result, nil
	}

	plan, err := planFilter(table, *filter, opts.Config)
	if err != nil {
		return nil, err
	}

	positions := plan.strategy(table, plan.column, filter.Value)
	result.Count = len(positions)
	if !opts.Quiet {
		result.Rows = make([]data.Row, len(positions))
		for i, pos := range positions {
			result.Rows[i] = projection.ProjectRow(store.At(pos), proj)
		}
	}

	slog.Debug("select completed",
		slog.String("table", table.Name),
		slog.String("column", filter.Column),
		slog.String("op", string(filter.Op)),
		slog.String("access_path", plan.path.String()),
		slog.Int("matches", result.Count),
	)

	return result, nil
}
