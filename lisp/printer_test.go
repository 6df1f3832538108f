package lisp

import (
	"math"
	"testing"
)

func TestPrint(t *testing.T) {
	cases := map[string]struct {
		val  Value
		text string
	}{
		"Integral":    {Number(3), "3"},
		"Fraction":    {Number(0.2), "0.2"},
		"Negative":    {Number(-2.5), "-2.5"},
		"Large":       {Number(1e21), "1e+21"},
		"Infinity":    {Number(math.Inf(1)), "1e999"},
		"NegInfinity": {Number(math.Inf(-1)), "-1e999"},
		"TextLiteral": {List{Symbol("quote"), Symbol("a b")}, `"a b"`},
		"QuotedBare":  {List{Symbol("quote"), Symbol("ab")}, "(quote ab)"},
		"True":        {Bool(true), "true"},
		"False":       {Bool(false), "false"},
		"Symbol":      {Symbol("equal?"), "equal?"},
		"Text":        {Symbol("hello world"), `"hello world"`},
		"Escapes":     {Symbol("a\"b\n"), `"a\"b\n"`},
		"NumericName": {Symbol("12"), `"12"`},
		"Empty":       {List{}, "()"},
		"Nested":      {List{Symbol("+"), Number(1), List{Number(2)}}, "(+ 1 (2))"},
		"Closure":     {&Closure{Params: []Symbol{"x", "y"}}, "#<lambda (x y)>"},
		"Builtin":     {&Builtin{Name: "count"}, "#<builtin count>"},
		"Unspecified": {Unspecified, "#<unspecified>"},
	}
	for name, c := range cases {
		if actual := Print(c.val); actual != c.text {
			t.Errorf("%s: expected %q, got %q", name, c.text, actual)
		}
	}
}

func TestDisplay(t *testing.T) {
	if actual := Display(Symbol("hello world")); actual != "hello world" {
		t.Errorf("expected symbols to display bare, got %q", actual)
	}
	if actual := Display(List{Symbol("a b")}); actual != `("a b")` {
		t.Errorf("expected lists to print normally, got %q", actual)
	}
}
