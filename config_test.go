package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "minilisp> " || cfg.ContinuationPrompt != "... " {
		t.Errorf("unexpected prompts %q %q", cfg.Prompt, cfg.ContinuationPrompt)
	}
	if cfg.HistoryFile != filepath.Join(home, historyFile) {
		t.Errorf("unexpected history file %q", cfg.HistoryFile)
	}
	if cfg.MaxDepth != 0 || len(cfg.Preload) != 0 {
		t.Errorf("expected no depth limit and no preloads, got %+v", cfg)
	}
}

func TestLoadConfigFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, configFile), `
prompt: "λ> "
history_file: ~/hist
preload:
  - ~/prelude.lisp
  - /abs/other.lisp
max_depth: 5000
log_level: debug
`)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "λ> " {
		t.Errorf("unexpected prompt %q", cfg.Prompt)
	}
	if cfg.ContinuationPrompt != "... " {
		t.Errorf("unset keys should keep their defaults, got %q", cfg.ContinuationPrompt)
	}
	if cfg.HistoryFile != filepath.Join(home, "hist") {
		t.Errorf("unexpected history file %q", cfg.HistoryFile)
	}
	expected := []string{filepath.Join(home, "prelude.lisp"), "/abs/other.lisp"}
	if !reflect.DeepEqual(cfg.Preload, expected) {
		t.Errorf("expected preload %v, got %v", expected, cfg.Preload)
	}
	if cfg.MaxDepth != 5000 {
		t.Errorf("unexpected max depth %d", cfg.MaxDepth)
	}
	if level, err := cfg.level(); err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v %v", level, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing explicit config")
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	writeConfig(t, unknown, "promt: typo\n")
	if _, err := loadConfig(unknown); err == nil {
		t.Errorf("expected an error for an unknown key")
	}

	negative := filepath.Join(dir, "negative.yaml")
	writeConfig(t, negative, "max_depth: -1\n")
	if _, err := loadConfig(negative); err == nil {
		t.Errorf("expected an error for a negative max_depth")
	}

	badLevel := filepath.Join(dir, "level.yaml")
	writeConfig(t, badLevel, "log_level: loud\n")
	cfg, err := loadConfig(badLevel)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.level(); err == nil {
		t.Errorf("expected an error for an unknown log level")
	}
}

func writeConfig(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
