// Package config resolves runtime settings from defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/timer"
	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to wire itself.
type Config struct {
	API       api.Config
	DBPath    string
	Practices []timer.Practice

	// File is the config file that was read, or "" when none existed.
	File string
}

// fileConfig mirrors ~/.haven/config.yaml.
type fileConfig struct {
	API struct {
		URL       string `yaml:"url"`
		TimeoutMs int    `yaml:"timeout_ms"`
		LogCalls  *bool  `yaml:"log_calls"`
	} `yaml:"api"`
	DB        string           `yaml:"db"`
	Practices []timer.Practice `yaml:"practices"`
}

// Default returns the configuration used when no file or environment
// override is present. home is the user's home directory.
func Default(home string) Config {
	return Config{
		API:       api.DefaultConfig(),
		DBPath:    filepath.Join(home, ".haven", "haven.db"),
		Practices: timer.Presets(),
	}
}

// Load resolves the configuration for the current user.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return load(home, os.Getenv)
}

func load(home string, getenv func(string) string) (Config, error) {
	cfg := Default(home)

	path := getenv("HAVEN_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".haven", "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		cfg.File = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No file is fine; defaults and env apply.
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg, getenv)

	for _, p := range cfg.Practices {
		if err := p.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid practice config: %w", err)
		}
	}
	return cfg, nil
}

func applyFile(cfg *Config, data []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if fc.API.URL != "" {
		cfg.API.BaseURL = fc.API.URL
	}
	if fc.API.TimeoutMs > 0 {
		cfg.API.TimeoutMs = fc.API.TimeoutMs
	}
	if fc.API.LogCalls != nil {
		cfg.API.LogCalls = *fc.API.LogCalls
	}
	if fc.DB != "" {
		cfg.DBPath = fc.DB
	}
	cfg.Practices = timer.Merge(cfg.Practices, fc.Practices)
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("HAVEN_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv("HAVEN_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutMs = n
		}
	}
	if v := getenv("HAVEN_LOG_CALLS"); v != "" {
		cfg.API.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := getenv("HAVEN_DB"); v != "" {
		cfg.DBPath = v
	}
}
