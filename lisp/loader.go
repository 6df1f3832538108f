package lisp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load reads the named file and evaluates its forms one at a time in env.
// It returns the value of the last form, or Unspecified for a file with no
// forms. Evaluation stops at the first form that fails to read or evaluate;
// earlier forms keep their effects.
func (in *Interpreter) Load(path string, env *Env) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: use %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	// Source is UTF-8; a byte order mark is dropped, and UTF-16 with a BOM
	// is transcoded.
	dec := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: use %s: %w", ErrIO, path, err)
	}

	in.Log.Debug("loading file", slog.String("path", path), slog.Int("bytes", len(data)))
	val, err := in.EvalSource(path, string(data), env)
	if err != nil {
		return nil, fmt.Errorf("use %s: %w", path, err)
	}
	return val, nil
}

// EvalSource reads and evaluates the forms in src in order, returning the
// value of the last one. Syntax errors are reported with a snippet of src
// labelled with name.
func (in *Interpreter) EvalSource(name, src string, env *Env) (Value, error) {
	r := NewReader(strings.NewReader(src))
	var ret Value = Unspecified
	for {
		expr, err := r.Next()
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			return nil, WithSource(err, name, src)
		}

		ret, err = in.Eval(expr, env)
		if err != nil {
			return nil, err
		}
	}
}

// EvalString evaluates src in the global environment.
func (in *Interpreter) EvalString(src string) (Value, error) {
	return in.EvalSource("", src, in.Global)
}
