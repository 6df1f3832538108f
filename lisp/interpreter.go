package lisp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var specialForms map[Symbol]specialform

func init() {
	specialForms = map[Symbol]specialform{
		Symbol("def"):    def,
		Symbol("lambda"): lambda,
		Symbol("λ"):      lambda,
		Symbol("if"):     ifprim,
		Symbol("quote"):  quote,
		Symbol("do"):     do,
	}
}

// primitives take pre-evaluated arguments and the env of the call
type primitive func(in *Interpreter, env *Env, args []Value) (Value, error)

// special forms take unevaluated arguments and the env
type specialform func(in *Interpreter, args []Value, env *Env) (Value, error)

// LineReader is the source readline draws from. *bufio.Reader satisfies it.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// Interpreter evaluates expressions. It owns the global environment and the
// streams that putstr and readline talk to. An Interpreter is not safe for
// concurrent use.
type Interpreter struct {
	Global *Env
	In     LineReader
	Out    io.Writer
	Log    *slog.Logger

	// MaxDepth bounds the nesting of Eval calls. Zero means no bound, in
	// which case deep recursion is limited only by the goroutine stack.
	MaxDepth int

	depth int
}

type Option func(*Interpreter)

func WithInput(r io.Reader) Option {
	return func(in *Interpreter) {
		lr, ok := r.(LineReader)
		if !ok {
			lr = bufio.NewReader(r)
		}
		in.In = lr
	}
}

func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.Out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.Log = l }
}

func WithMaxDepth(n int) Option {
	return func(in *Interpreter) { in.MaxDepth = n }
}

// New creates an interpreter whose global environment holds the builtin
// table plus true and false. By default it uses stdin and stdout.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		Global: NewEnv(nil),
		In:     bufio.NewReader(os.Stdin),
		Out:    os.Stdout,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}

	for name, op := range builtins {
		in.Global.Define(name, &Builtin{Name: name, op: op})
	}
	in.Global.Define(Symbol("true"), Bool(true))
	in.Global.Define(Symbol("false"), Bool(false))
	return in
}

// Eval evaluates an expression in env.
func (in *Interpreter) Eval(val Value, env *Env) (Value, error) {
	if in.MaxDepth > 0 && in.depth >= in.MaxDepth {
		in.Log.Debug("evaluation depth exceeded", slog.Int("max_depth", in.MaxDepth))
		return nil, fmt.Errorf("%w (%d)", ErrDepthExceeded, in.MaxDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	switch t := val.(type) {
	case Symbol:
		return env.Find(t)
	case List:
		return in.evalList(t, env)
	default:
		return t, nil
	}
}

func (in *Interpreter) evalList(t List, env *Env) (Value, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: () has no function to call", ErrEmptyApplication)
	}

	if sym, isSym := t[0].(Symbol); isSym {
		if spec, isSpec := specialForms[sym]; isSpec {
			return spec(in, t[1:], env)
		}
	}

	front, err := in.Eval(t[0], env)
	if err != nil {
		return nil, err
	}

	switch fn := front.(type) {
	case *Closure:
		args, err := in.evalSlice(t[1:], env)
		if err != nil {
			return nil, err
		}
		return in.apply(fn, args)
	case *Builtin:
		args, err := in.evalSlice(t[1:], env)
		if err != nil {
			return nil, err
		}
		return fn.op(in, env, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, Print(front))
	}
}

// eval all elements in a slice, left to right
func (in *Interpreter) evalSlice(val []Value, env *Env) ([]Value, error) {
	arr := make([]Value, len(val))
	for i, v := range val {
		res, err := in.Eval(v, env)
		if err != nil {
			return nil, err
		}
		arr[i] = res
	}
	return arr, nil
}

func (in *Interpreter) apply(proc *Closure, args []Value) (Value, error) {
	if len(args) != len(proc.Params) {
		return nil, fmt.Errorf("%w: procedure takes %d args, got %d", ErrArityMismatch, len(proc.Params), len(args))
	}

	child := NewEnv(proc.Env)
	for i, arg := range args {
		child.Define(proc.Params[i], arg)
	}

	return in.Eval(proc.Body, child)
}

// Special Forms

func def(in *Interpreter, args []Value, env *Env) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: def takes a name and a value, got %d forms", ErrMalformedForm, len(args))
	}

	sym, isSym := args[0].(Symbol)
	if !isSym {
		return nil, fmt.Errorf("%w: first argument to def must be a symbol", ErrMalformedForm)
	}

	evaled, err := in.Eval(args[1], env)
	if err != nil {
		return nil, err
	}

	env.Define(sym, evaled)
	return evaled, nil
}

func lambda(_ *Interpreter, args []Value, env *Env) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: lambda takes a parameter list and a body, got %d forms", ErrMalformedForm, len(args))
	}

	params, isList := args[0].(List)
	if !isList {
		return nil, fmt.Errorf("%w: first argument to lambda must be a list of symbols", ErrMalformedForm)
	}

	symbols := make([]Symbol, len(params))
	seen := make(map[Symbol]bool, len(params))
	for i, p := range params {
		sym, isSym := p.(Symbol)
		if !isSym {
			return nil, fmt.Errorf("%w: lambda parameter %s is not a symbol", ErrMalformedForm, Print(p))
		}
		if seen[sym] {
			return nil, fmt.Errorf("%w: duplicate lambda parameter %s", ErrMalformedForm, sym)
		}
		seen[sym] = true
		symbols[i] = sym
	}

	return &Closure{
		Params: symbols,
		Body:   args[1],
		Env:    env,
	}, nil
}

func ifprim(in *Interpreter, args []Value, env *Env) (Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: if takes a condition and two branches, got %d forms", ErrMalformedForm, len(args))
	}

	cond, err := in.Eval(args[0], env)
	if err != nil {
		return nil, err
	}

	if isTruthy(cond) {
		return in.Eval(args[1], env)
	}
	return in.Eval(args[2], env)
}

func quote(_ *Interpreter, args []Value, _ *Env) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: quote takes 1 form, got %d", ErrMalformedForm, len(args))
	}
	return args[0], nil
}

func do(in *Interpreter, args []Value, env *Env) (Value, error) {
	var ret Value = Unspecified
	for _, arg := range args {
		var err error
		ret, err = in.Eval(arg, env)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
