// Package logging builds the structured logger used across phonebook.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// Format names accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures logger construction.
type Options struct {
	Level  string    // debug | info | warn | error
	Format string    // text | json (default text)
	Output io.Writer // Destination (default os.Stderr).
}

// New returns a logger writing to opts.Output at opts.Level.
func New(opts Options) (*charmlog.Logger, error) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	level := charmlog.InfoLevel
	if opts.Level != "" {
		l, err := charmlog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	logger := charmlog.NewWithOptions(opts.Output, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "phonebook",
	})

	switch opts.Format {
	case "", FormatText:
		logger.SetFormatter(charmlog.TextFormatter)
	case FormatJSON:
		logger.SetFormatter(charmlog.JSONFormatter)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

// OpenFile opens path for appending log lines, creating parent directories.
// The caller closes the returned file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: creating directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: opening %s: %w", path, err)
	}
	return f, nil
}
