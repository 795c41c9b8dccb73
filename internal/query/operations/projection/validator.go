package projection

import (
	"fmt"

	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/schema"
)

// Validate resolves every column of a single-table projection against the
// table schema. A nil projection selects every column.
func Validate(table *schema.Table, proj *Projection) (*Projection, error) {
	if proj == nil {
		return Names(table.Schema.Names()...).withAllPositions(), nil
	}

	positions := make([]int, len(proj.Columns))
	for i, ref := range proj.Columns {
		pos, err := table.ColumnIndex(ref.Column)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	return &Projection{Columns: proj.Columns, Positions: positions}, nil
}

// ValidateJoin resolves each column against the table on its side.
// Columns are checked in request order so the first bad one is reported.
func ValidateJoin(left, right *schema.Table, proj *Projection) (*Projection, error) {
	if proj == nil {
		return nil, fmt.Errorf("join requires an explicit projection")
	}

	positions := make([]int, len(proj.Columns))
	for i, ref := range proj.Columns {
		var table *schema.Table
		switch ref.Side {
		case data.SideLeft:
			table = left
		case data.SideRight:
			table = right
		default:
			return nil, fmt.Errorf("column %q has no join side", ref.Column)
		}

		pos, err := table.ColumnIndex(ref.Column)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	return &Projection{Columns: proj.Columns, Positions: positions}, nil
}

func (p *Projection) withAllPositions() *Projection {
	p.Positions = make([]int, len(p.Columns))
	for i := range p.Columns {
		p.Positions[i] = i
	}
	return p
}
