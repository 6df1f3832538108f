package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	eofToken   tokenKind = iota
	openToken            // (
	closeToken           // )
	quoteToken           // '
	atomToken            // number or symbol
	textToken            // "text"
)

type token struct {
	kind       tokenKind
	text       string
	start, end Pos
}

// tokenizer splits source into tokens. It reads one rune at a time and
// never reads past the end of the token it returns, so the underlying
// bufio.Reader can be shared with other consumers between tokens.
type tokenizer struct {
	r    *bufio.Reader
	pos  Pos
	prev Pos
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func isDelimiter(ch rune) bool {
	return ch == '(' || ch == ')' || ch == '"' || ch == ';'
}

func (t *tokenizer) readRune() (rune, error) {
	ch, _, err := t.r.ReadRune()
	if err != nil {
		return 0, err
	}
	t.prev = t.pos
	if ch == '\n' {
		t.pos.Line++
		t.pos.Col = 1
	} else {
		t.pos.Col++
	}
	return ch, nil
}

func (t *tokenizer) unreadRune() {
	if t.r.UnreadRune() == nil {
		t.pos = t.prev
	}
}

func ioError(err error) error {
	return fmt.Errorf("%w: %v", ErrIO, err)
}

func (t *tokenizer) next() (token, error) {
	for {
		start := t.pos
		ch, err := t.readRune()
		if err == io.EOF {
			return token{kind: eofToken, start: start, end: start}, nil
		}
		if err != nil {
			return token{}, ioError(err)
		}

		switch {
		case isWhitespace(ch):
			continue
		case ch == ';':
			if err := t.skipComment(); err != nil {
				return token{}, err
			}
			continue
		case ch == '(':
			return token{kind: openToken, text: "(", start: start, end: t.pos}, nil
		case ch == ')':
			return token{kind: closeToken, text: ")", start: start, end: t.pos}, nil
		case ch == '\'':
			return token{kind: quoteToken, text: "'", start: start, end: t.pos}, nil
		case ch == '"':
			return t.readText(start)
		}

		text, err := t.readAtom(ch)
		if err != nil {
			return token{}, err
		}
		return token{kind: atomToken, text: text, start: start, end: t.pos}, nil
	}
}

func (t *tokenizer) skipComment() error {
	for {
		ch, err := t.readRune()
		if err == io.EOF || ch == '\n' {
			return nil
		}
		if err != nil {
			return ioError(err)
		}
	}
}

func (t *tokenizer) readAtom(initch rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(initch)

	for {
		ch, err := t.readRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", ioError(err)
		}
		if isWhitespace(ch) || isDelimiter(ch) {
			t.unreadRune()
			return sb.String(), nil
		}
		sb.WriteRune(ch)
	}
}

func (t *tokenizer) readText(start Pos) (token, error) {
	var sb strings.Builder

	for {
		ch, err := t.readRune()
		if err == io.EOF {
			return token{}, &SyntaxError{Start: start, End: t.pos, Msg: "unterminated text literal", Incomplete: true}
		}
		if err != nil {
			return token{}, ioError(err)
		}
		if ch == '"' {
			return token{kind: textToken, text: sb.String(), start: start, end: t.pos}, nil
		}
		if ch == '\\' {
			escStart := t.prev
			ch, err = t.readRune()
			if err == io.EOF {
				return token{}, &SyntaxError{Start: start, End: t.pos, Msg: "unterminated text literal", Incomplete: true}
			}
			if err != nil {
				return token{}, ioError(err)
			}
			switch ch {
			case 't':
				ch = '\t'
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case '\\':
			case '"':
			default:
				return token{}, &SyntaxError{Start: escStart, End: t.pos, Msg: fmt.Sprintf("unsupported escape character: \\%c", ch)}
			}
		}
		sb.WriteRune(ch)
	}
}

// Reader turns source text into a sequence of top-level expressions, one
// per call to Next. Forms are parsed only when asked for, so a caller can
// evaluate each form before a later one turns out to be malformed.
type Reader struct {
	tok tokenizer
}

// NewReader reads source from r. If r is a *bufio.Reader it is used
// directly, and is left positioned right after the last form returned.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{tok: tokenizer{r: br, pos: Pos{Line: 1, Col: 1}}}
}

// Next returns the next top-level expression, or io.EOF when the input
// holds no more forms.
func (r *Reader) Next() (Value, error) {
	t, err := r.tok.next()
	if err != nil {
		return nil, err
	}
	if t.kind == eofToken {
		return nil, io.EOF
	}
	return r.parse(t)
}

func (r *Reader) parse(t token) (Value, error) {
	switch t.kind {
	case openToken:
		return r.readList(t)
	case closeToken:
		return nil, &SyntaxError{Start: t.start, End: t.end, Msg: "unmatched ')'"}
	case quoteToken:
		return r.readQuoted(t)
	case textToken:
		return List{Symbol("quote"), Symbol(norm.NFC.String(t.text))}, nil
	case atomToken:
		return interpretToken(t.text), nil
	}
	return nil, &SyntaxError{Start: t.start, End: t.end, Msg: "unexpected end of input", Incomplete: true}
}

func (r *Reader) readList(open token) (Value, error) {
	l := List{}
	for {
		t, err := r.tok.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case eofToken:
			return nil, &SyntaxError{Start: open.start, End: t.start, Msg: "unterminated list", Incomplete: true}
		case closeToken:
			return l, nil
		}

		item, err := r.parse(t)
		if err != nil {
			return nil, err
		}
		l = append(l, item)
	}
}

func (r *Reader) readQuoted(quote token) (Value, error) {
	t, err := r.tok.next()
	if err != nil {
		return nil, err
	}
	if t.kind == eofToken {
		return nil, &SyntaxError{Start: quote.start, End: t.start, Msg: "nothing to quote", Incomplete: true}
	}
	val, err := r.parse(t)
	if err != nil {
		return nil, err
	}
	return List{Symbol("quote"), val}, nil
}

func interpretToken(s string) Value {
	if looksNumeric(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return Number(f)
		}
	}
	return Symbol(norm.NFC.String(s))
}

// looksNumeric rejects tokens such as "inf" or "nan" that ParseFloat
// would accept but that are meant to be symbols.
func looksNumeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// ReadAll parses every expression in src.
func ReadAll(src string) ([]Value, error) {
	r := NewReader(strings.NewReader(src))
	var exprs []Value
	for {
		expr, err := r.Next()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}
