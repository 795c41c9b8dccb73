package repl

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leengari/sillyql/internal/domain/command"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/engine"
	"github.com/leengari/sillyql/internal/parser"
	"github.com/leengari/sillyql/internal/parser/ast"
	"github.com/leengari/sillyql/internal/parser/lexer"
)

const prompt = "% "

// Options tune a session
type Options struct {
	// Quiet suppresses headers and rows of PRINT and JOIN. Counts and
	// messages are still written.
	Quiet bool
	// NoPrompt drops the "% " prompt, for scripted callers
	NoPrompt bool
}

// Session reads commands from one input and writes their results to one
// output. Sessions share the engine; each keeps its own parser state.
type Session struct {
	eng    *engine.Engine
	parser *parser.Parser
	out    *bufio.Writer
	opts   Options
}

// NewSession creates a session reading commands from in
func NewSession(eng *engine.Engine, in io.Reader, out io.Writer, opts Options) *Session {
	return &Session{
		eng:    eng,
		parser: parser.New(lexer.New(in)),
		out:    bufio.NewWriter(out),
		opts:   opts,
	}
}

// Run processes commands until QUIT, the end of input, or ctx is done.
// Command failures are reported on the output and do not stop the session;
// only a failure to read input or write output is returned.
func (s *Session) Run(ctx context.Context) error {
	defer s.out.Flush()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !s.opts.NoPrompt {
			s.out.WriteString(prompt)
		}

		stmt, err := s.parser.Next()
		if err == io.EOF {
			slog.Debug("input exhausted, ending session")
			return nil
		}
		if err != nil && !isCommandError(err) {
			return err
		}

		quit := false
		if err == nil {
			quit, err = s.Execute(stmt)
		}
		if err != nil {
			s.reportError(err, stmt)
		}

		if ferr := s.out.Flush(); ferr != nil {
			return ferr
		}
		if quit {
			return nil
		}
	}
}

// reportError writes a failed command the way the protocol expects
func (s *Session) reportError(err error, stmt ast.Statement) {
	var unrec *errors.UnrecognizedCommandError
	if stderrors.As(err, &unrec) {
		fmt.Fprintln(s.out, "Error: unrecognized command")
		return
	}
	fmt.Fprintf(s.out, "Error during %s: %s\n", commandFor(err, stmt), errorMessage(err))
}

// commandFor names the command a failure belongs to
func commandFor(err error, stmt ast.Statement) command.Kind {
	if kind := errors.CommandOf(err); kind != command.KindUnknown && kind != "" {
		return kind
	}
	var syn *parser.SyntaxError
	if stderrors.As(err, &syn) && syn.Command != command.KindUnknown {
		return syn.Command
	}
	if stmt != nil {
		return stmt.Command()
	}
	return command.KindUnknown
}

// errorMessage unwraps to the engine error so the message matches the
// protocol text exactly
func errorMessage(err error) string {
	var (
		exists   *errors.TableExistsError
		notFound *errors.TableNotFoundError
		column   *errors.ColumnNotFoundError
	)
	switch {
	case stderrors.As(err, &exists):
		return exists.Error()
	case stderrors.As(err, &notFound):
		return notFound.Error()
	case stderrors.As(err, &column):
		return column.Error()
	}
	return err.Error()
}

// isCommandError reports whether err is a per-command failure the session
// recovers from, as opposed to an I/O failure
func isCommandError(err error) bool {
	var (
		unrec *errors.UnrecognizedCommandError
		syn   *parser.SyntaxError
	)
	return stderrors.As(err, &unrec) || stderrors.As(err, &syn)
}

// Start runs an interactive session until QUIT or end of input
func Start(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer, opts Options) error {
	return NewSession(eng, in, out, opts).Run(ctx)
}
