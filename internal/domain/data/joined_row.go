package data

import "fmt"

// Side selects which input of a join a projected column comes from
type Side int

const (
	SideLeft Side = iota + 1
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// JoinedRow is one (left row, right row) match produced by a join
type JoinedRow struct {
	LeftPos  int
	RightPos int
	Left     Row
	Right    Row
}

// Get returns the cell at col from the requested side
func (jr JoinedRow) Get(side Side, col int) Value {
	if side == SideLeft {
		return jr.Left[col]
	}
	return jr.Right[col]
}

// String returns a string representation for debugging
func (jr JoinedRow) String() string {
	return fmt.Sprintf("JoinedRow{%d:%v, %d:%v}", jr.LeftPos, jr.Left, jr.RightPos, jr.Right)
}

// ResultSet is what scans and joins hand back to the collaborator.
// Count is always the exact number of matches; Rows is left empty when the
// caller asked for quiet output.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows,omitempty"`
	Count   int      `json:"count"`
}
