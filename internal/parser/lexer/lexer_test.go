package lexer

import (
	"io"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNextToken(t *testing.T) {
	input := `CREATE pets 2 string int name age
PRINT FROM pets 1 name WHERE age > 3`

	tests := []struct {
		expectedLiteral string
		expectedLine    int
	}{
		{"CREATE", 1},
		{"pets", 1},
		{"2", 1},
		{"string", 1},
		{"int", 1},
		{"name", 1},
		{"age", 1},
		{"PRINT", 2},
		{"FROM", 2},
		{"pets", 2},
		{"1", 2},
		{"name", 2},
		{"WHERE", 2},
		{"age", 2},
		{">", 2},
		{"3", 2},
	}

	l := New(strings.NewReader(input))

	for i, tt := range tests {
		tok, err := l.NextToken()
		assert.NilError(t, err, "tests[%d]", i)
		assert.Equal(t, tok.Literal, tt.expectedLiteral, "tests[%d]", i)
		assert.Equal(t, tok.Line, tt.expectedLine, "tests[%d]", i)
	}

	_, err := l.NextToken()
	assert.Equal(t, err, io.EOF)
}

func TestTokenColumns(t *testing.T) {
	l := New(strings.NewReader("  REMOVE   pets"))

	tok, err := l.NextToken()
	assert.NilError(t, err)
	assert.Equal(t, tok.Column, 3)

	tok, err = l.NextToken()
	assert.NilError(t, err)
	assert.Equal(t, tok.Column, 12)
}

func TestDiscardLineKeepsNextLine(t *testing.T) {
	l := New(strings.NewReader("PRINT FROM ghost 2 a b ALL\nREMOVE pets\n"))

	_, err := l.NextToken()
	assert.NilError(t, err)
	_, err = l.NextToken()
	assert.NilError(t, err)

	assert.NilError(t, l.DiscardLine())

	tok, err := l.NextToken()
	assert.NilError(t, err)
	assert.Equal(t, tok.Literal, "REMOVE")
	assert.Equal(t, tok.Line, 2)
}

func TestDiscardLineAfterLastWord(t *testing.T) {
	// The line break after the last word is still pending, so discarding
	// must not swallow the following line.
	l := New(strings.NewReader("REMOVE ghost\nQUIT\n"))

	_, _ = l.NextToken()
	_, _ = l.NextToken()
	assert.NilError(t, l.DiscardLine())

	tok, err := l.NextToken()
	assert.NilError(t, err)
	assert.Equal(t, tok.Literal, "QUIT")
}

func TestReadLine(t *testing.T) {
	l := New(strings.NewReader("a b\r\nc"))

	line, err := l.ReadLine()
	assert.NilError(t, err)
	assert.Equal(t, line, "a b")

	line, err = l.ReadLine()
	assert.NilError(t, err)
	assert.Equal(t, line, "c")

	_, err = l.ReadLine()
	assert.Equal(t, err, io.EOF)

	// Discarding past the end is not an error
	assert.NilError(t, l.DiscardLine())
}
