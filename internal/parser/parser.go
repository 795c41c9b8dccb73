package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leengari/sillyql/internal/domain/command"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/parser/ast"
	"github.com/leengari/sillyql/internal/parser/lexer"
)

// SyntaxError reports a malformed command
type SyntaxError struct {
	Command command.Kind
	Line    int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (line %d)", e.Msg, e.Line)
}

// Parser reads protocol commands one at a time from a lexer.
// Commands are recognized by the first letter of their first word.
type Parser struct {
	l       *lexer.Lexer
	curTok  lexer.Token
	cmd     command.Kind
	midLine bool // the current line still has unread input
}

func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// Next parses the next command. It returns io.EOF when the input ends
// before a command starts.
//
// On error the rest of the offending line has already been thrown away,
// so the caller can simply continue with the next command.
func (p *Parser) Next() (ast.Statement, error) {
	tok, err := p.l.NextToken()
	if err != nil {
		return nil, err
	}
	p.curTok = tok
	p.midLine = true
	p.cmd = command.KindUnknown

	stmt, err := p.parse(tok)
	if err != nil {
		p.recover()
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) recover() {
	if p.midLine {
		_ = p.l.DiscardLine()
		p.midLine = false
	}
}

func (p *Parser) parse(tok lexer.Token) (ast.Statement, error) {
	switch tok.Literal[0] {
	case '#':
		rest, err := p.readLine()
		if err != nil && err != io.EOF {
			return nil, err
		}
		return &ast.CommentStatement{Text: tok.Literal + rest}, nil
	case 'C':
		p.cmd = command.KindCreate
		return p.parseCreate()
	case 'I':
		p.cmd = command.KindInsert
		return p.parseInsert()
	case 'P':
		p.cmd = command.KindPrint
		return p.parsePrint()
	case 'D':
		p.cmd = command.KindDelete
		return p.parseDelete()
	case 'G':
		p.cmd = command.KindGenerate
		return p.parseGenerate()
	case 'J':
		p.cmd = command.KindJoin
		return p.parseJoin()
	case 'R':
		p.cmd = command.KindRemove
		return p.parseRemove()
	case 'Q':
		p.cmd = command.KindQuit
		return &ast.QuitStatement{}, nil
	default:
		return nil, &errors.UnrecognizedCommandError{Input: tok.Literal}
	}
}

// CREATE <table> <N> <type>... <name>...
func (p *Parser) parseCreate() (*ast.CreateStatement, error) {
	stmt := &ast.CreateStatement{}

	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	n, err := p.count("column count")
	if err != nil {
		return nil, err
	}

	if stmt.Types, err = p.words(n, "column type"); err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.words(n, "column name"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// INSERT INTO <table> <N> ROWS, then N lines of values
func (p *Parser) parseInsert() (*ast.InsertStatement, error) {
	stmt := &ast.InsertStatement{}

	if err := p.expect("INTO"); err != nil {
		return nil, err
	}
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	n, err := p.count("row count")
	if err != nil {
		return nil, err
	}
	rows, err := p.next()
	if err != nil {
		return nil, err
	}

	trailing, err := p.readLine()
	if err != nil && err != io.EOF {
		return nil, err
	}

	// Once the count is known the data lines are consumed even if the rest
	// of the header is malformed, so they are never mistaken for commands.
	for len(stmt.Rows) < n {
		line, err := p.readLine()
		if err == io.EOF {
			return nil, p.errorf("expected %d rows, got %d", n, len(stmt.Rows))
		}
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		stmt.Rows = append(stmt.Rows, fields)
	}

	if rows.Literal != "ROWS" {
		return nil, p.errorf("expected ROWS, got %s", rows.Literal)
	}
	if strings.TrimSpace(trailing) != "" {
		return nil, p.errorf("unexpected %q after ROWS", strings.TrimSpace(trailing))
	}
	return stmt, nil
}

// PRINT FROM <table> <N> <col>... {ALL | WHERE <col> <op> <value>}
func (p *Parser) parsePrint() (*ast.PrintStatement, error) {
	stmt := &ast.PrintStatement{}

	if err := p.expect("FROM"); err != nil {
		return nil, err
	}
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	n, err := p.count("column count")
	if err != nil {
		return nil, err
	}
	if stmt.Columns, err = p.words(n, "column name"); err != nil {
		return nil, err
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Literal {
	case "ALL":
		return stmt, nil
	case "WHERE":
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Where = cond
		return stmt, nil
	default:
		return nil, p.errorf("expected ALL or WHERE, got %s", tok.Literal)
	}
}

// DELETE FROM <table> WHERE <col> <op> <value>
func (p *Parser) parseDelete() (*ast.DeleteStatement, error) {
	stmt := &ast.DeleteStatement{}

	if err := p.expect("FROM"); err != nil {
		return nil, err
	}
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if err := p.expect("WHERE"); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt.Where = *cond
	return stmt, nil
}

// GENERATE FOR <table> <hash|bst> INDEX ON <col>
func (p *Parser) parseGenerate() (*ast.GenerateStatement, error) {
	stmt := &ast.GenerateStatement{}

	if err := p.expect("FOR"); err != nil {
		return nil, err
	}
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if stmt.IndexType, err = p.word("index type"); err != nil {
		return nil, err
	}
	if err := p.expect("INDEX"); err != nil {
		return nil, err
	}
	if err := p.expect("ON"); err != nil {
		return nil, err
	}
	if stmt.Column, err = p.word("column name"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// JOIN <t1> AND <t2> WHERE <c1> = <c2> AND PRINT <N> (<col> <1|2>)...
func (p *Parser) parseJoin() (*ast.JoinStatement, error) {
	stmt := &ast.JoinStatement{}
	var err error

	if stmt.Left, err = p.word("table name"); err != nil {
		return nil, err
	}
	if err := p.expect("AND"); err != nil {
		return nil, err
	}
	if stmt.Right, err = p.word("table name"); err != nil {
		return nil, err
	}
	if err := p.expect("WHERE"); err != nil {
		return nil, err
	}
	if stmt.LeftColumn, err = p.word("column name"); err != nil {
		return nil, err
	}
	if err := p.expect("="); err != nil {
		return nil, err
	}
	if stmt.RightColumn, err = p.word("column name"); err != nil {
		return nil, err
	}
	if err := p.expect("AND"); err != nil {
		return nil, err
	}
	if err := p.expect("PRINT"); err != nil {
		return nil, err
	}

	n, err := p.count("column count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		col, err := p.word("column name")
		if err != nil {
			return nil, err
		}
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Literal != "1" && tok.Literal != "2" {
			return nil, p.errorf("expected table number 1 or 2, got %s", tok.Literal)
		}
		stmt.Columns = append(stmt.Columns, ast.JoinColumn{Column: col, Table: int(tok.Literal[0] - '0')})
	}
	return stmt, nil
}

// REMOVE <table>
func (p *Parser) parseRemove() (*ast.RemoveStatement, error) {
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	return &ast.RemoveStatement{Table: table}, nil
}

// <col> <op> <value>
func (p *Parser) parseCondition() (*ast.Condition, error) {
	cond := &ast.Condition{}
	var err error

	if cond.Column, err = p.word("column name"); err != nil {
		return nil, err
	}
	op, err := p.next()
	if err != nil {
		return nil, err
	}
	if !isComparisonOperator(op.Literal) {
		return nil, p.errorf("expected one of = < >, got %s", op.Literal)
	}
	cond.Operator = op.Literal

	if cond.Value, err = p.word("value"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) next() (lexer.Token, error) {
	tok, err := p.l.NextToken()
	if err == io.EOF {
		return lexer.Token{}, p.errorf("unexpected end of input")
	}
	if err != nil {
		return lexer.Token{}, err
	}
	p.midLine = true
	p.curTok = tok
	return tok, nil
}

func (p *Parser) readLine() (string, error) {
	line, err := p.l.ReadLine()
	p.midLine = false
	return line, err
}

func (p *Parser) expect(keyword string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Literal != keyword {
		return p.errorf("expected %s, got %s", keyword, tok.Literal)
	}
	return nil
}

func (p *Parser) word(what string) (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if isComparisonOperator(tok.Literal) && what != "value" {
		return "", p.errorf("expected %s, got %s", what, tok.Literal)
	}
	return tok.Literal, nil
}

// words reads n words. n comes straight from the input, so nothing is
// preallocated from it.
func (p *Parser) words(n int, what string) ([]string, error) {
	var out []string
	for i := 0; i < n; i++ {
		w, err := p.word(what)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (p *Parser) count(what string) (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n < 0 {
		return 0, p.errorf("expected %s, got %s", what, tok.Literal)
	}
	return n, nil
}

func (p *Parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Command: p.cmd,
		Line:    p.curTok.Line,
		Msg:     fmt.Sprintf(format, args...),
	}
}
