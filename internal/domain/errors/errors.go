package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/leengari/sillyql/internal/domain/command"
)

// TableExistsError is returned when CREATE names a table that already exists
type TableExistsError struct {
	Command   command.Kind
	TableName string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("Cannot create already existing table %s", e.TableName)
}

// TableNotFoundError is returned when a command names an unknown table
type TableNotFoundError struct {
	Command   command.Kind
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("%s does not name a table in the database", e.TableName)
}

// ColumnNotFoundError is returned when a column is not part of a table's schema
type ColumnNotFoundError struct {
	Command    command.Kind
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s does not name a column in %s", e.ColumnName, e.TableName)
}

// UnrecognizedCommandError is returned by the command processor for input
// it cannot dispatch
type UnrecognizedCommandError struct {
	Input string
}

func (e *UnrecognizedCommandError) Error() string {
	return "unrecognized command"
}

// SchemaError reports an invalid column declaration at table creation
type SchemaError struct {
	TableName  string
	ColumnName string
	Reason     string
}

func (e *SchemaError) Error() string {
	if e.ColumnName == "" {
		return fmt.Sprintf("invalid schema for %s: %s", e.TableName, e.Reason)
	}
	return fmt.Sprintf("invalid schema for %s: column %s: %s", e.TableName, e.ColumnName, e.Reason)
}

// ConstraintError represents a row or argument that does not conform to a
// table's schema (wrong arity, value of the wrong kind)
type ConstraintError struct {
	Command    command.Kind
	Table      string      // table name
	Column     string      // column name (empty if row-level)
	Value      interface{} // offending value (may be nil)
	Constraint string      // "arity", "type_mismatch", "not_a_number"
	Reason     string      // human-readable explanation (optional)
	RowIndex   int         // row number (0-based) within the batch (-1 if unknown)
}

func (e *ConstraintError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("constraint violation in %s", e.Table))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	return strings.Join(parts, " - ")
}

// NewArityViolation reports a row with the wrong number of cells
func NewArityViolation(table string, want, got, rowIndex int) *ConstraintError {
	return &ConstraintError{
		Command:    command.KindInsert,
		Table:      table,
		Constraint: "arity",
		Reason:     fmt.Sprintf("expected %d values, got %d", want, got),
		RowIndex:   rowIndex,
	}
}

// NewTypeMismatch reports a value whose kind differs from its column's kind
func NewTypeMismatch(cmd command.Kind, table, column string, value interface{}, expected string, rowIndex int) *ConstraintError {
	return &ConstraintError{
		Command:    cmd,
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected %s", expected),
		RowIndex:   rowIndex,
	}
}

// NewNotANumber reports a NaN double, which no column accepts
func NewNotANumber(cmd command.Kind, table, column string, rowIndex int) *ConstraintError {
	return &ConstraintError{
		Command:    cmd,
		Table:      table,
		Column:     column,
		Constraint: "not_a_number",
		Reason:     "NaN is not a value",
		RowIndex:   rowIndex,
	}
}

// CommandOf extracts the command kind carried by one of the engine's error
// types anywhere in err's chain. It returns command.KindUnknown otherwise.
func CommandOf(err error) command.Kind {
	var (
		exists   *TableExistsError
		notFound *TableNotFoundError
		column   *ColumnNotFoundError
		cons     *ConstraintError
		sch      *SchemaError
	)
	switch {
	case stderrors.As(err, &exists):
		return exists.Command
	case stderrors.As(err, &notFound):
		return notFound.Command
	case stderrors.As(err, &column):
		return column.Command
	case stderrors.As(err, &cons):
		return cons.Command
	case stderrors.As(err, &sch):
		return command.KindCreate
	}
	return command.KindUnknown
}

// WithCommand returns err with the command kind recorded on the engine
// error it wraps. Lower layers report errors without knowing which command
// they serve; the engine stamps them on the way out.
func WithCommand(err error, cmd command.Kind) error {
	var (
		exists   *TableExistsError
		notFound *TableNotFoundError
		column   *ColumnNotFoundError
		cons     *ConstraintError
	)
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &exists):
		c := *exists
		c.Command = cmd
		return &c
	case stderrors.As(err, &notFound):
		c := *notFound
		c.Command = cmd
		return &c
	case stderrors.As(err, &column):
		c := *column
		c.Command = cmd
		return &c
	case stderrors.As(err, &cons):
		c := *cons
		c.Command = cmd
		return &c
	}
	return err
}
