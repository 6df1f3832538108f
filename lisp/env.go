package lisp

import "fmt"

// Env is one lexical scope. Lookups that miss fall through to parent.
// A scope captured by a closure stays alive as long as the closure does.
type Env struct {
	symbols map[Symbol]Value
	parent  *Env
}

// NewEnv creates a scope nested in parent. A nil parent makes a root scope.
func NewEnv(parent *Env) *Env {
	return &Env{symbols: make(map[Symbol]Value), parent: parent}
}

// Define binds sym in this scope, replacing any earlier binding here.
func (e *Env) Define(sym Symbol, val Value) {
	e.symbols[sym] = val
}

// Lookup returns the innermost binding of sym.
func (e *Env) Lookup(sym Symbol) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.symbols[sym]; ok {
			return val, true
		}
	}
	return nil, false
}

func (e *Env) Find(sym Symbol) (Value, error) {
	val, ok := e.Lookup(sym)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnboundSymbol, sym)
	}
	return val, nil
}

func (e *Env) Parent() *Env {
	return e.parent
}
