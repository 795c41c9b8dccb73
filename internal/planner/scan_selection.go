package planner

import (
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/query/indexing"
)

// AccessPath is how a predicate on one column reaches its rows
type AccessPath int

const (
	AccessFullScan AccessPath = iota // no usable index
	AccessHash                       // live hash index on the column
	AccessOrdered                    // live ordered index on the column
)

func (p AccessPath) String() string {
	switch p {
	case AccessHash:
		return "hash_index"
	case AccessOrdered:
		return "ordered_index"
	default:
		return "full_scan"
	}
}

// ResolveAccessPath picks the access path for a predicate on column.
// Only a live index on that exact column counts; an index on any other
// column means a full scan. Callers must hold the table lock.
func ResolveAccessPath(t *schema.Table, column int, cfg *ExecutionConfig) AccessPath {
	cfg = orDefault(cfg)
	if !cfg.UseIndexes {
		return AccessFullScan
	}

	idx := t.IndexOn(column)
	if idx == nil {
		return AccessFullScan
	}

	switch idx.Kind() {
	case indexing.KindHash:
		return AccessHash
	case indexing.KindOrdered:
		return AccessOrdered
	}
	return AccessFullScan
}

// JoinStrategy is how the right side of a join is probed
type JoinStrategy int

const (
	JoinProbeOrdered  JoinStrategy = iota + 1 // existing ordered index on the right column
	JoinProbeHash                             // existing hash index on the right column
	JoinTemporaryHash                         // hash index built for this join only
	JoinNestedLoop                            // pairwise comparison
)

func (s JoinStrategy) String() string {
	switch s {
	case JoinProbeOrdered:
		return "ordered_index_probe"
	case JoinProbeHash:
		return "hash_index_probe"
	case JoinTemporaryHash:
		return "temporary_hash"
	case JoinNestedLoop:
		return "nested_loop"
	default:
		return "unknown"
	}
}

// SelectJoinStrategy prefers a live index on the right join column and
// otherwise falls back to the configured algorithm.
// Callers must hold the right table's lock.
func SelectJoinStrategy(right *schema.Table, rightColumn int, cfg *ExecutionConfig) JoinStrategy {
	cfg = orDefault(cfg)

	var strategy JoinStrategy
	switch ResolveAccessPath(right, rightColumn, cfg) {
	case AccessOrdered:
		strategy = JoinProbeOrdered
	case AccessHash:
		strategy = JoinProbeHash
	default:
		if cfg.JoinAlgorithm == JoinAlgorithmNestedLoop {
			strategy = JoinNestedLoop
		} else {
			strategy = JoinTemporaryHash
		}
	}

	slog.Debug("join strategy selected",
		slog.String("right_table", right.Name),
		slog.Int("right_column", rightColumn),
		slog.String("strategy", strategy.String()))

	return strategy
}
