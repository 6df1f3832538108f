package lisp

import (
	"fmt"
	"io"
	"math"
	"strings"
)

var builtins map[Symbol]primitive

func init() {
	builtins = map[Symbol]primitive{
		Symbol("+"):        add,
		Symbol("-"):        sub,
		Symbol("*"):        mul,
		Symbol("/"):        div,
		Symbol(">"):        gt,
		Symbol(">="):       gte,
		Symbol("<"):        lt,
		Symbol("<="):       lte,
		Symbol("equal?"):   equal,
		Symbol("list"):     list,
		Symbol("list?"):    isList,
		Symbol("empty?"):   isEmpty,
		Symbol("count"):    count,
		Symbol("type"):     typeOf,
		Symbol("eval"):     eval,
		Symbol("use"):      use,
		Symbol("putstr"):   putstr,
		Symbol("readline"): readline,
		Symbol("exit"):     exit,
	}
}

const variadic = -1

func checkArity(name string, args []Value, min, max int) error {
	n := len(args)
	switch {
	case min == max && n != min:
		return fmt.Errorf("%w: %s takes %d args, got %d", ErrArityMismatch, name, min, n)
	case n < min:
		return fmt.Errorf("%w: %s takes at least %d args, got %d", ErrArityMismatch, name, min, n)
	case max != variadic && n > max:
		return fmt.Errorf("%w: %s takes at most %d args, got %d", ErrArityMismatch, name, max, n)
	}
	return nil
}

func numbers(name string, args []Value) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, isNum := arg.(Number)
		if !isNum {
			return nil, fmt.Errorf("%w: %s expects numbers, got %s %s", ErrType, name, TypeName(arg), Print(arg))
		}
		nums[i] = float64(n)
	}
	return nums, nil
}

// Arithmetic

func add(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return agg("+", args, Number(0), func(r, x float64) (float64, error) {
		return r + x, nil
	})
}

func mul(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return agg("*", args, Number(1), func(r, x float64) (float64, error) {
		return r * x, nil
	})
}

func sub(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("-", args, 1, variadic); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return agg("-", args, Number(0), func(r, x float64) (float64, error) {
			return r - x, nil
		})
	}
	return agg("-", args[1:], args[0], func(r, x float64) (float64, error) {
		return r - x, nil
	})
}

func div(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("/", args, 1, variadic); err != nil {
		return nil, err
	}
	divide := func(r, x float64) (float64, error) {
		if x == 0 {
			return 0, fmt.Errorf("%w: %s", ErrDivisionByZero, Print(append(List{Symbol("/")}, args...)))
		}
		return r / x, nil
	}
	if len(args) == 1 {
		return agg("/", args, Number(1), divide)
	}
	return agg("/", args[1:], args[0], divide)
}

// agg folds args into init from the left
func agg(name string, args []Value, init Value, accum func(float64, float64) (float64, error)) (Value, error) {
	first, err := numbers(name, []Value{init})
	if err != nil {
		return nil, err
	}
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}

	ret := first[0]
	for _, x := range nums {
		ret, err = accum(ret, x)
		if err != nil {
			return nil, err
		}
	}
	return Number(ret), nil
}

// Comparison

func gt(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return order(">", args, func(r, x float64) bool {
		return r > x
	})
}

func gte(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return order(">=", args, func(r, x float64) bool {
		return r >= x
	})
}

func lt(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return order("<", args, func(r, x float64) bool {
		return r < x
	})
}

func lte(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	return order("<=", args, func(r, x float64) bool {
		return r <= x
	})
}

// order is true when every adjacent pair of args satisfies cmp
func order(name string, args []Value, cmp func(float64, float64) bool) (Value, error) {
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(nums); i++ {
		if !cmp(nums[i-1], nums[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func equal(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	for i := 1; i < len(args); i++ {
		if !Equals(args[0], args[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

// Lists

func list(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	l := make(List, len(args))
	copy(l, args)
	return l, nil
}

func isList(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("list?", args, 1, 1); err != nil {
		return nil, err
	}
	_, isList := args[0].(List)
	return Bool(isList), nil
}

func listArg(name string, args []Value) (List, error) {
	if err := checkArity(name, args, 1, 1); err != nil {
		return nil, err
	}
	l, isList := args[0].(List)
	if !isList {
		return nil, fmt.Errorf("%w: %s expects a list, got %s %s", ErrType, name, TypeName(args[0]), Print(args[0]))
	}
	return l, nil
}

func isEmpty(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	l, err := listArg("empty?", args)
	if err != nil {
		return nil, err
	}
	return Bool(len(l) == 0), nil
}

func count(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	l, err := listArg("count", args)
	if err != nil {
		return nil, err
	}
	return Number(len(l)), nil
}

func typeOf(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("type", args, 1, 1); err != nil {
		return nil, err
	}
	return TypeName(args[0]), nil
}

// Evaluation

func eval(in *Interpreter, env *Env, args []Value) (Value, error) {
	if err := checkArity("eval", args, 1, 1); err != nil {
		return nil, err
	}
	return in.Eval(args[0], env)
}

func use(in *Interpreter, env *Env, args []Value) (Value, error) {
	if err := checkArity("use", args, 1, 1); err != nil {
		return nil, err
	}
	path, isSym := args[0].(Symbol)
	if !isSym {
		return nil, fmt.Errorf("%w: use expects a file name, got %s %s", ErrType, TypeName(args[0]), Print(args[0]))
	}
	return in.Load(string(path), env)
}

// I/O

func putstr(in *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("putstr", args, 1, 1); err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(in.Out, Display(args[0])); err != nil {
		return nil, fmt.Errorf("%w: putstr: %w", ErrIO, err)
	}
	return Unspecified, nil
}

func readline(in *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("readline", args, 0, 0); err != nil {
		return nil, err
	}
	line, err := in.In.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, fmt.Errorf("%w: readline: %w", ErrIO, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return Symbol(line), nil
}

func exit(_ *Interpreter, _ *Env, args []Value) (Value, error) {
	if err := checkArity("exit", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, &ExitError{Code: 0}
	}
	code, isNum := args[0].(Number)
	if !isNum {
		return nil, fmt.Errorf("%w: exit expects a number, got %s %s", ErrType, TypeName(args[0]), Print(args[0]))
	}
	// status codes outside the int32 range have no portable conversion
	if math.IsNaN(float64(code)) || code <= math.MinInt32-1 || code >= math.MaxInt32+1 {
		return nil, fmt.Errorf("%w: exit status %s is out of range", ErrType, Print(code))
	}
	return nil, &ExitError{Code: int(code)}
}
