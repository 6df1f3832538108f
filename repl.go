package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jpschroeder/minilisp/lisp"
)

// runStream evaluates forms from redirected input one at a time. The same
// buffered reader feeds readline, so a program can read the lines that
// follow the form being evaluated.
func runStream(in *lisp.Interpreter, r *bufio.Reader, stdout, stderr io.Writer) int {
	reader := lisp.NewReader(r)
	status := 0
	for {
		expr, err := reader.Next()
		if err == io.EOF {
			return status
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			if lisp.IsIncomplete(err) || errors.Is(err, lisp.ErrIO) {
				return 1
			}
			status = 1
			continue
		}
		skipLineEnd(r)

		val, err := in.Eval(expr, in.Global)
		if err != nil {
			var exitErr *lisp.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.Code
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
			continue
		}
		printResult(stdout, val)
	}
}

// skipLineEnd drops blanks and one line break after a form, so a readline
// in that form starts on the next line.
func skipLineEnd(r *bufio.Reader) {
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		switch ch {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return
		}
		r.UnreadRune()
		return
	}
}

// linerInput lets readline prompt through liner while the REPL owns the
// terminal.
type linerInput struct {
	*liner.State
}

func (l linerInput) ReadString(delim byte) (string, error) {
	line, err := l.Prompt("")
	if err != nil {
		return "", err
	}
	return line + string(delim), nil
}

func runInteractive(in *lisp.Interpreter, cfg Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	in.In = linerInput{ln}

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.HistoryFile)
			if err != nil {
				in.Log.Warn("saving history", slog.String("path", cfg.HistoryFile), slog.Any("err", err))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		src, ok := readForms(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if exitErr := evalPrint(in, src, stdout, stderr); exitErr != nil {
			return exitErr.Code
		}
	}
}

// readForms prompts until the collected lines no longer end inside an
// unfinished form. It returns false at end of input.
func readForms(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := lisp.ReadAll(src); lisp.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// evalPrint evaluates each form in src, printing results and errors. An
// error ends that form only; the next form still runs.
func evalPrint(in *lisp.Interpreter, src string, stdout, stderr io.Writer) *lisp.ExitError {
	reader := lisp.NewReader(strings.NewReader(src))
	for {
		expr, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", lisp.WithSource(err, "", src))
			return nil
		}

		val, err := in.Eval(expr, in.Global)
		if err != nil {
			var exitErr *lisp.ExitError
			if errors.As(err, &exitErr) {
				return exitErr
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		printResult(stdout, val)
	}
}
