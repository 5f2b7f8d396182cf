// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all phonebook configuration.
type Config struct {
	Shell Shell `yaml:"shell"`
	Log   Log   `yaml:"log"`
}

// Shell holds interactive shell settings.
type Shell struct {
	Prompt       string `yaml:"prompt"`
	Greeting     string `yaml:"greeting"`
	PositionBase int    `yaml:"position_base"` // 0 or 1: first phone position shown to users
	History      int    `yaml:"history"`       // Commands kept for up/down recall
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
	File   string `yaml:"file"`   // Empty: stderr in plain mode, discarded in TUI mode
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell: Shell{
			Prompt:       "> ",
			Greeting:     "Phonebook ready. Type 'help' for commands.",
			PositionBase: 1,
			History:      100,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Shell.PositionBase != 0 && c.Shell.PositionBase != 1 {
		return fmt.Errorf("config: shell.position_base must be 0 or 1, got %d", c.Shell.PositionBase)
	}
	if c.Shell.History < 0 {
		return fmt.Errorf("config: shell.history must be non-negative, got %d", c.Shell.History)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_PROMPT, PHONEBOOK_POSITION_BASE,
// PHONEBOOK_LOG_LEVEL, PHONEBOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PHONEBOOK_PROMPT"); v != "" {
		c.Shell.Prompt = v
	}
	if v := os.Getenv("PHONEBOOK_POSITION_BASE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PHONEBOOK_POSITION_BASE %q: %w", v, err)
		}
		c.Shell.PositionBase = n
	}
	if v := os.Getenv("PHONEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PHONEBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Shell *rawShell `yaml:"shell"`
	Log   *rawLog   `yaml:"log"`
}

type rawShell struct {
	Prompt       *string `yaml:"prompt"`
	Greeting     *string `yaml:"greeting"`
	PositionBase *int    `yaml:"position_base"`
	History      *int    `yaml:"history"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Shell != nil {
		if layer.Shell.Prompt != nil {
			c.Shell.Prompt = *layer.Shell.Prompt
		}
		if layer.Shell.Greeting != nil {
			c.Shell.Greeting = *layer.Shell.Greeting
		}
		if layer.Shell.PositionBase != nil {
			c.Shell.PositionBase = *layer.Shell.PositionBase
		}
		if layer.Shell.History != nil {
			c.Shell.History = *layer.Shell.History
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
