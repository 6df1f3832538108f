package lisp

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the reader or the interpreter wraps
// exactly one of these, so callers can test with errors.Is.
var (
	ErrSyntax           = errors.New("syntax error")
	ErrUnboundSymbol    = errors.New("unbound symbol")
	ErrEmptyApplication = errors.New("empty application")
	ErrNotCallable      = errors.New("not callable")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrType             = errors.New("type error")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrMalformedForm    = errors.New("malformed special form")
	ErrDepthExceeded    = errors.New("maximum evaluation depth exceeded")
	ErrIO               = errors.New("i/o error")
)

// Pos is a 1-based line and column in source text.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SyntaxError reports malformed parenthesization. Start and End delimit the
// offending span: the stray ')' for an unmatched close, or the open '(' up
// to the end of input for an unterminated list.
type SyntaxError struct {
	Start, End Pos
	Msg        string

	// Incomplete is set when more input could still complete the form.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Start, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// IsIncomplete reports whether err is a syntax error caused only by the
// input ending too early.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr) && serr.Incomplete
}

// ExitError is returned by the exit builtin. It unwinds through every
// enclosing evaluation so the host can clean up and terminate with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// WithSource decorates a syntax error with a snippet of src pointing at the
// error. Other errors are returned unchanged.
func WithSource(err error, name, src string) error {
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		return err
	}
	return &sourceError{err: err, text: snippet(src, name, serr)}
}

type sourceError struct {
	err  error
	text string
}

func (e *sourceError) Error() string { return e.text }
func (e *sourceError) Unwrap() error { return e.err }

func snippet(src, name string, serr *SyntaxError) string {
	lines := strings.Split(src, "\n")
	line := serr.Start.Line
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	col := serr.Start.Col
	if col < 1 {
		col = 1
	}

	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "syntax error in %s at %s: %s\n", name, serr.Start, serr.Msg)
	} else {
		fmt.Fprintf(&sb, "syntax error at %s: %s\n", serr.Start, serr.Msg)
	}
	width := len(fmt.Sprint(line))
	fmt.Fprintf(&sb, "%*d | %s\n", width, line, lines[line-1])
	fmt.Fprintf(&sb, "%*s | %s^", width, "", strings.Repeat(" ", col-1))
	return sb.String()
}
