package repl

import (
	"fmt"
	"strings"

	"github.com/leengari/sillyql/internal/domain/command"
	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/parser/ast"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/indexing"
	"github.com/leengari/sillyql/internal/query/operations/crud"
	"github.com/leengari/sillyql/internal/query/operations/join"
	"github.com/leengari/sillyql/internal/query/operations/projection"
)

// Execute runs one parsed command and writes its output.
// It reports whether the session should end.
func (s *Session) Execute(stmt ast.Statement) (bool, error) {
	switch st := stmt.(type) {
	case *ast.CommentStatement:
		return false, nil
	case *ast.QuitStatement:
		fmt.Fprintln(s.out, "Thanks for being silly!")
		return true, nil
	case *ast.CreateStatement:
		return false, s.execCreate(st)
	case *ast.InsertStatement:
		return false, s.execInsert(st)
	case *ast.PrintStatement:
		return false, s.execPrint(st)
	case *ast.DeleteStatement:
		return false, s.execDelete(st)
	case *ast.GenerateStatement:
		return false, s.execGenerate(st)
	case *ast.JoinStatement:
		return false, s.execJoin(st)
	case *ast.RemoveStatement:
		return false, s.execRemove(st)
	default:
		return false, &errors.UnrecognizedCommandError{Input: stmt.String()}
	}
}

func (s *Session) execCreate(st *ast.CreateStatement) error {
	defs := make([]schema.ColumnDef, len(st.Columns))
	for i, name := range st.Columns {
		kind, err := data.ParseKind(st.Types[i])
		if err != nil {
			return err
		}
		defs[i] = schema.ColumnDef{Name: name, Type: kind}
	}

	if _, err := s.eng.CreateTable(st.Table, defs); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "New table %s with column(s) %s created\n", st.Table, joinWords(st.Columns))
	return nil
}

func (s *Session) execInsert(st *ast.InsertStatement) error {
	ts, err := s.eng.Schema(command.KindInsert, st.Table)
	if err != nil {
		return err
	}

	rows := make([]data.Row, len(st.Rows))
	for i, fields := range st.Rows {
		row, err := convertRow(ts, fields, i)
		if err != nil {
			return errors.WithCommand(err, command.KindInsert)
		}
		rows[i] = row
	}

	start, end, err := s.eng.InsertRows(st.Table, rows)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Added %d rows to %s from position %d to %d\n", len(rows), st.Table, start, end-1)
	return nil
}

func (s *Session) execPrint(st *ast.PrintStatement) error {
	var filter *crud.Filter
	if st.Where != nil {
		ts, err := s.eng.Schema(command.KindPrint, st.Table)
		if err != nil {
			return err
		}
		f, err := convertCondition(ts, *st.Where)
		if err != nil {
			return errors.WithCommand(err, command.KindPrint)
		}
		filter = &f
	}

	result, err := s.eng.Scan(st.Table, st.Columns, filter, s.opts.Quiet)
	if err != nil {
		return err
	}

	s.renderResult(result)
	fmt.Fprintf(s.out, "Printed %d matching rows from %s\n", result.Count, st.Table)
	return nil
}

func (s *Session) execDelete(st *ast.DeleteStatement) error {
	ts, err := s.eng.Schema(command.KindDelete, st.Table)
	if err != nil {
		return err
	}
	filter, err := convertCondition(ts, st.Where)
	if err != nil {
		return errors.WithCommand(err, command.KindDelete)
	}

	deleted, err := s.eng.DeleteWhere(st.Table, filter)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Deleted %d rows from %s\n", deleted, st.Table)
	return nil
}

func (s *Session) execGenerate(st *ast.GenerateStatement) error {
	// Table first, so an unknown table wins over an unknown index type
	if _, err := s.eng.Schema(command.KindGenerate, st.Table); err != nil {
		return err
	}
	kind, err := indexing.ParseKind(st.IndexType)
	if err != nil {
		return err
	}

	if err := s.eng.GenerateIndex(st.Table, kind, st.Column); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Created %s index for table %s on column %s\n", kind, st.Table, st.Column)
	return nil
}

func (s *Session) execJoin(st *ast.JoinStatement) error {
	proj := projection.NewProjectionWithColumns()
	for _, c := range st.Columns {
		side := data.SideRight
		if c.Table == 1 {
			side = data.SideLeft
		}
		proj.AddColumn(c.Column, side)
	}

	result, err := s.eng.Join(join.Request{
		Left:        st.Left,
		LeftColumn:  st.LeftColumn,
		Right:       st.Right,
		RightColumn: st.RightColumn,
		Projection:  proj,
	}, s.opts.Quiet)
	if err != nil {
		return err
	}

	s.renderResult(result)
	fmt.Fprintf(s.out, "Printed %d rows from joining %s to %s\n", result.Count, st.Left, st.Right)
	return nil
}

func (s *Session) execRemove(st *ast.RemoveStatement) error {
	if err := s.eng.DropTable(st.Table); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Table %s deleted\n", st.Table)
	return nil
}

// renderResult writes the header line and rows; nothing in quiet mode.
// Every name and cell is followed by a single space.
func (s *Session) renderResult(result *data.ResultSet) {
	if s.opts.Quiet {
		return
	}
	for _, col := range result.Columns {
		s.out.WriteString(col)
		s.out.WriteByte(' ')
	}
	s.out.WriteByte('\n')

	for _, row := range result.Rows {
		for _, v := range row {
			s.out.WriteString(v.String())
			s.out.WriteByte(' ')
		}
		s.out.WriteByte('\n')
	}
}

// convertRow types one line of INSERT input against the schema
func convertRow(ts *schema.TableSchema, fields []string, rowIndex int) (data.Row, error) {
	if len(fields) != ts.Arity() {
		return nil, errors.NewArityViolation(ts.TableName, ts.Arity(), len(fields), rowIndex)
	}
	row := make(data.Row, len(fields))
	for i, col := range ts.Columns {
		v, err := data.ParseValue(col.Type, fields[i])
		if err != nil {
			return nil, errors.NewTypeMismatch(command.KindInsert, ts.TableName, col.Name, fields[i], col.Type.String(), rowIndex)
		}
		row[i] = v
	}
	return row, nil
}

// convertCondition types a WHERE literal with its column's kind.
// An unknown column keeps the raw literal; the engine then reports the
// missing column in its usual validation order.
func convertCondition(ts *schema.TableSchema, cond ast.Condition) (crud.Filter, error) {
	op, err := planner.ParseOperator(cond.Operator)
	if err != nil {
		return crud.Filter{}, err
	}

	pos, ok := ts.Lookup(cond.Column)
	if !ok {
		return crud.Filter{Column: cond.Column, Op: op, Value: data.String(cond.Value)}, nil
	}

	col := ts.Columns[pos]
	v, err := data.ParseValue(col.Type, cond.Value)
	if err != nil {
		return crud.Filter{}, errors.NewTypeMismatch("", ts.TableName, col.Name, cond.Value, col.Type.String(), -1)
	}
	return crud.Filter{Column: cond.Column, Op: op, Value: v}, nil
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}
