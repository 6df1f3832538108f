package lisp

import (
	"errors"
	"testing"
)

func TestEnvShadowing(t *testing.T) {
	global := NewEnv(nil)
	global.Define("x", Number(1))
	global.Define("y", Number(2))

	child := NewEnv(global)
	child.Define("x", Number(10))

	testLookup(t, child, "x", Number(10))
	testLookup(t, child, "y", Number(2))
	testLookup(t, global, "x", Number(1))

	if child.Parent() != global {
		t.Errorf("expected child's parent to be the global scope")
	}
}

func TestEnvRedefine(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Number(1))
	env.Define("x", Number(2))
	testLookup(t, env, "x", Number(2))
}

func TestEnvSharedParent(t *testing.T) {
	parent := NewEnv(nil)
	a := NewEnv(parent)
	b := NewEnv(parent)

	parent.Define("shared", Symbol("later"))
	testLookup(t, a, "shared", Symbol("later"))
	testLookup(t, b, "shared", Symbol("later"))

	a.Define("own", Number(1))
	if _, ok := b.Lookup("own"); ok {
		t.Errorf("sibling scopes should not see each other's bindings")
	}
}

func TestEnvUnbound(t *testing.T) {
	env := NewEnv(NewEnv(nil))
	_, err := env.Find("nope")
	if !errors.Is(err, ErrUnboundSymbol) {
		t.Errorf("expected unbound symbol, got %v", err)
	}
}

func testLookup(t *testing.T, env *Env, sym Symbol, expected Value) {
	t.Helper()
	actual, err := env.Find(sym)
	if err != nil {
		t.Errorf("%s: %v", sym, err)
		return
	}
	if !Equals(actual, expected) {
		t.Errorf("%s: expected %s, got %s", sym, Print(expected), Print(actual))
	}
}
