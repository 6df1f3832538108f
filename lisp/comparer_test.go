package lisp

import "testing"

func TestEqual(t *testing.T) {
	shouldEqual(t, Number(1), Number(1))
	shouldEqual(t, Number(2.5), Number(2.5))
	shouldEqual(t, Symbol("+"), Symbol("+"))
	shouldEqual(t, Bool(true), Bool(true))
	shouldEqual(t, List{Number(1), Number(2), Symbol("blah"), Bool(true)}, List{Number(1), Number(2), Symbol("blah"), Bool(true)})
	shouldEqual(t, List{List{}, List{Number(1)}}, List{List{}, List{Number(1)}})
	shouldEqual(t, List{}, List(nil))
	shouldEqual(t, Unspecified, Unspecified)

	fn := &Closure{Params: []Symbol{"x"}, Body: Symbol("x")}
	shouldEqual(t, fn, fn)
}

func TestNotEqual(t *testing.T) {
	shouldNotEqual(t, Number(1), Number(2))
	shouldNotEqual(t, Number(2.5), Number(3.6))
	shouldNotEqual(t, Symbol("+"), Symbol("-"))
	shouldNotEqual(t, Bool(true), Bool(false))
	shouldNotEqual(t, List{Number(1), Number(2), Symbol("blah"), Bool(true)}, List{Number(1), Number(3), Symbol("blah"), Bool(false)})
	shouldNotEqual(t, List{Number(1)}, List{Number(1), Number(1)})
	shouldNotEqual(t,
		&Closure{Params: []Symbol{"x"}, Body: Symbol("x")},
		&Closure{Params: []Symbol{"x"}, Body: Symbol("x")})
}

func TestTypeMismatch(t *testing.T) {
	shouldNotEqual(t, Number(1), Symbol("1"))
	shouldNotEqual(t, Symbol("true"), Bool(true))
	shouldNotEqual(t, Number(0), Bool(false))
	shouldNotEqual(t, List{}, Unspecified)
	shouldNotEqual(t, List{Number(1)}, Number(1))
	shouldNotEqual(t, Number(1), List{Number(1)})
}

func shouldEqual(t *testing.T, val1, val2 Value) {
	t.Helper()
	if !Equals(val1, val2) {
		t.Errorf("\n%v | %v - Expected: equal", Print(val1), Print(val2))
	}
}

func shouldNotEqual(t *testing.T, val1, val2 Value) {
	t.Helper()
	if Equals(val1, val2) {
		t.Errorf("\n%v | %v - Expected: not equal", Print(val1), Print(val2))
	}
}
