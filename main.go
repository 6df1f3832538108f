package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"

	"github.com/jpschroeder/minilisp/lisp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole command. It returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("minilisp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default ~/"+configFile+")")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	expr := fs.String("e", "", "evaluate `source` and print the result")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: minilisp [flags] [file ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	level, err := cfg.level()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input := bufio.NewReader(stdin)
	in := lisp.New(
		lisp.WithInput(input),
		lisp.WithOutput(stdout),
		lisp.WithLogger(logger),
		lisp.WithMaxDepth(cfg.MaxDepth),
	)

	for _, path := range cfg.Preload {
		logger.Debug("preloading", slog.String("path", path))
		if _, err := in.Load(path, in.Global); err != nil {
			return report(stderr, err)
		}
	}

	switch {
	case *expr != "":
		val, err := in.EvalSource("-e", *expr, in.Global)
		if err != nil {
			return report(stderr, err)
		}
		printResult(stdout, val)
		return 0
	case fs.NArg() > 0:
		for _, path := range fs.Args() {
			if _, err := in.Load(path, in.Global); err != nil {
				return report(stderr, err)
			}
		}
		return 0
	case isTerminal(stdin):
		return runInteractive(in, cfg, stdout, stderr)
	default:
		return runStream(in, input, stdout, stderr)
	}
}

// report prints err and returns the exit status it calls for.
func report(stderr io.Writer, err error) int {
	var exitErr *lisp.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func printResult(stdout io.Writer, val lisp.Value) {
	if val == lisp.Unspecified {
		return
	}
	fmt.Fprintln(stdout, lisp.Print(val))
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok || !liner.TerminalSupported() {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
