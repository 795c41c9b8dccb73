package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Token is one whitespace-separated word of protocol input
type Token struct {
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%q, %d:%d)", t.Literal, t.Line, t.Column)
}

// Lexer reads words from a stream while tracking line boundaries, so a
// failed command can throw away the rest of its input.
//
// A word never consumes the whitespace that ends it; in particular the
// newline after the last word of a line stays pending until the next read
// or DiscardLine.
type Lexer struct {
	r      *bufio.Reader
	line   int
	column int
	prev   int // column before the last rune read
}

func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r), line: 1}
}

// Line returns the current line number (1-based)
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) readRune() (rune, error) {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	l.prev = l.column
	if ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return ch, nil
}

func (l *Lexer) unreadRune(ch rune) {
	_ = l.r.UnreadRune()
	if ch == '\n' {
		l.line--
	}
	l.column = l.prev
}

// NextToken returns the next word, crossing line breaks as needed.
// It returns io.EOF once the input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	var ch rune
	var err error

	// skip whitespace
	for {
		ch, err = l.readRune()
		if err != nil {
			return Token{}, err
		}
		if !unicode.IsSpace(ch) {
			break
		}
	}

	tok := Token{Line: l.line, Column: l.column}
	var sb strings.Builder
	sb.WriteRune(ch)

	for {
		ch, err = l.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(ch) {
			l.unreadRune(ch)
			break
		}
		sb.WriteRune(ch)
	}

	tok.Literal = sb.String()
	return tok, nil
}

// ReadLine returns the rest of the current line without its line break.
// It returns io.EOF only when nothing at all is left.
func (l *Lexer) ReadLine() (string, error) {
	s, err := l.r.ReadString('\n')
	if err == io.EOF && s == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	if strings.HasSuffix(s, "\n") {
		l.line++
		l.column = 0
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// DiscardLine throws away everything up to and including the next line
// break. Running out of input is not an error.
func (l *Lexer) DiscardLine() error {
	_, err := l.ReadLine()
	if err == io.EOF {
		return nil
	}
	return err
}
