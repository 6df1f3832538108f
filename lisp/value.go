package lisp

// Value is any runtime value. The set of implementations is closed: Number,
// Bool, Symbol, List, *Closure, *Builtin and the Unspecified marker.
type Value interface {
	lispValue()
}

type Number float64

type Bool bool

// Symbol is a name. Two symbols are the same symbol when their names match.
type Symbol string

// List is the compound value, used for data and for unevaluated code.
// Lists are never modified after construction; builtins that need a
// different list build a new one.
type List []Value

// Closure is a user defined function. Env is the environment that was
// active when the lambda was evaluated; free variables in Body are looked
// up through it at call time.
type Closure struct {
	Params []Symbol
	Body   Value
	Env    *Env
}

// Builtin is a native function from the builtin table.
type Builtin struct {
	Name Symbol
	op   primitive
}

type unspecified struct{}

// Unspecified is returned by operations whose result carries no meaning.
var Unspecified Value = unspecified{}

func (Number) lispValue()      {}
func (Bool) lispValue()        {}
func (Symbol) lispValue()      {}
func (List) lispValue()        {}
func (*Closure) lispValue()    {}
func (*Builtin) lispValue()    {}
func (unspecified) lispValue() {}

// TypeName names the variant of v.
func TypeName(v Value) Symbol {
	switch v.(type) {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Symbol:
		return "symbol"
	case List:
		return "list"
	case *Closure, *Builtin:
		return "function"
	case unspecified:
		return "unspecified"
	}
	panic("unknown value type")
}

func isTruthy(val Value) bool {
	b, isBool := val.(Bool)
	return !isBool || bool(b)
}
