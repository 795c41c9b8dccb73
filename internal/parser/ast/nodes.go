package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/leengari/sillyql/internal/domain/command"
)

// Node is the base interface for all AST nodes
type Node interface {
	String() string
}

// Statement represents one protocol command
type Statement interface {
	Node
	Command() command.Kind
	statementNode()
}

// Condition is a single-column predicate with its literal still untyped.
// The literal gets its kind from the column once the table is known.
type Condition struct {
	Column   string
	Operator string
	Value    string
}

func (c *Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Operator, c.Value)
}

// CreateStatement: CREATE t N types... names...
type CreateStatement struct {
	Table   string
	Types   []string
	Columns []string
}

func (s *CreateStatement) statementNode()        {}
func (s *CreateStatement) Command() command.Kind { return command.KindCreate }
func (s *CreateStatement) String() string {
	return fmt.Sprintf("CREATE %s %d %s %s", s.Table, len(s.Columns),
		strings.Join(s.Types, " "), strings.Join(s.Columns, " "))
}

// InsertStatement: INSERT INTO t N ROWS followed by N data lines.
// Each row holds the raw fields of one line.
type InsertStatement struct {
	Table string
	Rows  [][]string
}

func (s *InsertStatement) statementNode()        {}
func (s *InsertStatement) Command() command.Kind { return command.KindInsert }
func (s *InsertStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "INSERT INTO %s %d ROWS", s.Table, len(s.Rows))
	for _, row := range s.Rows {
		out.WriteString("\n")
		out.WriteString(strings.Join(row, " "))
	}
	return out.String()
}

// PrintStatement: PRINT FROM t N cols... {ALL | WHERE c op v}.
// Where is nil for ALL.
type PrintStatement struct {
	Table   string
	Columns []string
	Where   *Condition
}

func (s *PrintStatement) statementNode()        {}
func (s *PrintStatement) Command() command.Kind { return command.KindPrint }
func (s *PrintStatement) String() string {
	head := fmt.Sprintf("PRINT FROM %s %d %s", s.Table, len(s.Columns), strings.Join(s.Columns, " "))
	if s.Where == nil {
		return head + " ALL"
	}
	return head + " WHERE " + s.Where.String()
}

// DeleteStatement: DELETE FROM t WHERE c op v
type DeleteStatement struct {
	Table string
	Where Condition
}

func (s *DeleteStatement) statementNode()        {}
func (s *DeleteStatement) Command() command.Kind { return command.KindDelete }
func (s *DeleteStatement) String() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", s.Table, s.Where.String())
}

// GenerateStatement: GENERATE FOR t {hash|bst} INDEX ON c
type GenerateStatement struct {
	Table     string
	IndexType string
	Column    string
}

func (s *GenerateStatement) statementNode()        {}
func (s *GenerateStatement) Command() command.Kind { return command.KindGenerate }
func (s *GenerateStatement) String() string {
	return fmt.Sprintf("GENERATE FOR %s %s INDEX ON %s", s.Table, s.IndexType, s.Column)
}

// JoinColumn is one projected column of a join and the table it comes
// from (1 for the left table, 2 for the right)
type JoinColumn struct {
	Column string
	Table  int
}

// JoinStatement: JOIN t1 AND t2 WHERE c1 = c2 AND PRINT N (col 1|2)...
type JoinStatement struct {
	Left        string
	Right       string
	LeftColumn  string
	RightColumn string
	Columns     []JoinColumn
}

func (s *JoinStatement) statementNode()        {}
func (s *JoinStatement) Command() command.Kind { return command.KindJoin }
func (s *JoinStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "JOIN %s AND %s WHERE %s = %s AND PRINT %d",
		s.Left, s.Right, s.LeftColumn, s.RightColumn, len(s.Columns))
	for _, c := range s.Columns {
		fmt.Fprintf(&out, " %s %d", c.Column, c.Table)
	}
	return out.String()
}

// RemoveStatement: REMOVE t
type RemoveStatement struct {
	Table string
}

func (s *RemoveStatement) statementNode()        {}
func (s *RemoveStatement) Command() command.Kind { return command.KindRemove }
func (s *RemoveStatement) String() string        { return "REMOVE " + s.Table }

// QuitStatement: QUIT
type QuitStatement struct{}

func (s *QuitStatement) statementNode()        {}
func (s *QuitStatement) Command() command.Kind { return command.KindQuit }
func (s *QuitStatement) String() string        { return "QUIT" }

// CommentStatement is a line starting with '#'
type CommentStatement struct {
	Text string
}

func (s *CommentStatement) statementNode()        {}
func (s *CommentStatement) Command() command.Kind { return command.KindUnknown }
func (s *CommentStatement) String() string        { return s.Text }
