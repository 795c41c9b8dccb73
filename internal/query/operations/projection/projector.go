package projection

import (
	"github.com/leengari/sillyql/internal/domain/data"
)

// ProjectRow applies a validated projection to a single row
// Returns a new row containing only the requested columns, in request order
func ProjectRow(row data.Row, proj *Projection) data.Row {
	if proj == nil {
		return row.Copy()
	}

	projected := make(data.Row, len(proj.Positions))
	for i, pos := range proj.Positions {
		projected[i] = row[pos]
	}
	return projected
}

// ProjectJoinedRow applies a validated join projection, pulling each cell
// from the side its column was requested from
func ProjectJoinedRow(row data.JoinedRow, proj *Projection) data.Row {
	projected := make(data.Row, len(proj.Positions))
	for i, pos := range proj.Positions {
		projected[i] = row.Get(proj.Columns[i].Side, pos)
	}
	return projected
}
