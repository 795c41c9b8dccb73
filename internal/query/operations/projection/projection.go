package projection

import "github.com/leengari/sillyql/internal/domain/data"

// ColumnRef represents one requested output column.
// Side is only meaningful for joins; single-table projections leave it zero.
type ColumnRef struct {
	Column string
	Side   data.Side
}

// Projection is the caller-chosen, ordered list of columns to materialize.
// Positions is filled in by Validate/ValidateJoin and is parallel to Columns.
type Projection struct {
	Columns   []ColumnRef
	Positions []int
}

// NewProjectionWithColumns creates a projection for specific columns
func NewProjectionWithColumns(columns ...ColumnRef) *Projection {
	return &Projection{Columns: columns}
}

// Names creates a single-table projection from column names
func Names(names ...string) *Projection {
	p := &Projection{Columns: make([]ColumnRef, len(names))}
	for i, n := range names {
		p.Columns[i] = ColumnRef{Column: n}
	}
	return p
}

// AddColumn appends a column to the projection
func (p *Projection) AddColumn(column string, side data.Side) {
	p.Columns = append(p.Columns, ColumnRef{Column: column, Side: side})
	p.Positions = nil
}

// Headers returns the output column names in order
func (p *Projection) Headers() []string {
	if p == nil {
		return nil
	}
	headers := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		headers[i] = c.Column
	}
	return headers
}
