package lisp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Print renders val in the form the reader accepts back, where one exists.
func Print(val Value) string {
	switch t := val.(type) {
	case Number:
		// infinities print as a literal that overflows back to them
		if math.IsInf(float64(t), 1) {
			return "1e999"
		}
		if math.IsInf(float64(t), -1) {
			return "-1e999"
		}
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(t))
	case Symbol:
		if needsQuoting(t) {
			return quoteText(string(t))
		}
		return string(t)
	case List:
		if text, isText := textLiteral(t); isText {
			return quoteText(string(text))
		}
		arr := make([]string, len(t))
		for i, v := range t {
			arr[i] = Print(v)
		}
		return fmt.Sprintf("(%s)", strings.Join(arr, " "))
	case *Closure:
		arr := make([]string, len(t.Params))
		for i, p := range t.Params {
			arr[i] = string(p)
		}
		return fmt.Sprintf("#<lambda (%s)>", strings.Join(arr, " "))
	case *Builtin:
		return fmt.Sprintf("#<builtin %s>", t.Name)
	case unspecified:
		return "#<unspecified>"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// needsQuoting reports whether sym would not read back as a bare symbol.
func needsQuoting(sym Symbol) bool {
	if sym == "" || looksNumeric(string(sym)) || sym[0] == '\'' {
		return true
	}
	for _, ch := range sym {
		if isWhitespace(ch) || isDelimiter(ch) {
			return true
		}
	}
	return false
}

// textLiteral reports whether l is what the reader makes of a text
// literal, (quote S) where S would not read back bare.
func textLiteral(l List) (Symbol, bool) {
	if len(l) != 2 || l[0] != Symbol("quote") {
		return "", false
	}
	sym, isSym := l[1].(Symbol)
	if !isSym || !needsQuoting(sym) {
		return "", false
	}
	return sym, true
}

func quoteText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

// Display is Print without decoration for symbols: the form putstr writes.
func Display(val Value) string {
	if sym, isSym := val.(Symbol); isSym {
		return string(sym)
	}
	return Print(val)
}
