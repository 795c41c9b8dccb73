package schema

import (
	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
)

// Column is one (name, type) entry of a table schema
type Column struct {
	Name     string    `json:"name"`
	Type     data.Kind `json:"type"`
	Position int       `json:"position"`
}

// ColumnDef is the caller's declaration of a column at CREATE time
type ColumnDef struct {
	Name string
	Type data.Kind
}

// TableSchema is the ordered, immutable column registry of a table
type TableSchema struct {
	TableName string
	Columns   []Column
	positions map[string]int
}

// NewTableSchema registers the columns in declared order.
// Duplicate names are rejected with a SchemaError.
func NewTableSchema(tableName string, defs []ColumnDef) (*TableSchema, error) {
	if len(defs) == 0 {
		return nil, &errors.SchemaError{TableName: tableName, Reason: "a table needs at least one column"}
	}

	s := &TableSchema{
		TableName: tableName,
		Columns:   make([]Column, 0, len(defs)),
		positions: make(map[string]int, len(defs)),
	}
	for i, def := range defs {
		if def.Name == "" {
			return nil, &errors.SchemaError{TableName: tableName, Reason: "empty column name"}
		}
		if _, dup := s.positions[def.Name]; dup {
			return nil, &errors.SchemaError{
				TableName:  tableName,
				ColumnName: def.Name,
				Reason:     "duplicate column name",
			}
		}
		s.positions[def.Name] = i
		s.Columns = append(s.Columns, Column{Name: def.Name, Type: def.Type, Position: i})
	}
	return s, nil
}

// Lookup returns the position of the named column
func (s *TableSchema) Lookup(name string) (int, bool) {
	pos, ok := s.positions[name]
	return pos, ok
}

// Names returns the column names in declared order
func (s *TableSchema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Arity returns the number of columns
func (s *TableSchema) Arity() int {
	return len(s.Columns)
}
