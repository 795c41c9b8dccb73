package schema

import (
	"slices"

	"github.com/leengari/sillyql/internal/domain/errors"
)

// Database maps table names to tables.
// It performs no locking; the engine serializes access to it.
type Database struct {
	Name   string
	Tables map[string]*Table
}

// NewDatabase creates an empty database
func NewDatabase(name string) *Database {
	return &Database{
		Name:   name,
		Tables: make(map[string]*Table),
	}
}

// Create adds a new table. Fails with TableExistsError if the name is taken.
func (db *Database) Create(name string, defs []ColumnDef) (*Table, error) {
	if _, exists := db.Tables[name]; exists {
		return nil, &errors.TableExistsError{TableName: name}
	}
	t, err := NewTable(name, defs)
	if err != nil {
		return nil, err
	}
	db.Tables[name] = t
	return t, nil
}

// Get looks a table up by name
func (db *Database) Get(name string) (*Table, error) {
	t, ok := db.Tables[name]
	if !ok {
		return nil, &errors.TableNotFoundError{TableName: name}
	}
	return t, nil
}

// Drop removes a table and everything it owns
func (db *Database) Drop(name string) error {
	if _, ok := db.Tables[name]; !ok {
		return &errors.TableNotFoundError{TableName: name}
	}
	delete(db.Tables, name)
	return nil
}

// Names returns the table names in sorted order
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.Tables))
	for name := range db.Tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
