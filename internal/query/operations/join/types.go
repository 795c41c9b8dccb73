package join

import (
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/operations/projection"
)

// Request describes an inner equi-join between two named tables.
// Rows match when Left.LeftColumn equals Right.RightColumn.
type Request struct {
	Left        string
	LeftColumn  string
	Right       string
	RightColumn string
	Projection  *projection.Projection
}

// Options tune how a join runs
type Options struct {
	Config *planner.ExecutionConfig
	// Quiet skips row materialization. The match count is unaffected.
	Quiet bool
}
