package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	configFile  = ".minilisp.yaml"
	historyFile = ".minilisp_history"
)

// Config holds the settings read from the YAML config file.
type Config struct {
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	HistoryFile        string   `yaml:"history_file"`
	Preload            []string `yaml:"preload"`
	MaxDepth           int      `yaml:"max_depth"`
	LogLevel           string   `yaml:"log_level"`
}

func defaultConfig() Config {
	cfg := Config{
		Prompt:             "minilisp> ",
		ContinuationPrompt: "... ",
		LogLevel:           "warn",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, historyFile)
	}
	return cfg
}

// loadConfig reads path, or ~/.minilisp.yaml when path is empty. A missing
// default file is not an error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("parsing config %s: max_depth must not be negative", path)
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = expandHome(p)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("parsing config: log_level: %w", err)
	}
	return level, nil
}
