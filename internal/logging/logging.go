// Package logging configures structured logging with slog. The TUI owns the
// terminal while a track plays, so records go to a file by default.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the logging configuration.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format string
	// FilePath receives log records. Empty or "-" means stderr.
	FilePath string
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewHandler builds a text or JSON handler writing to w.
func NewHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.Format)
}

// Setup installs the default slog logger and returns a close function for
// the underlying file.
func Setup(cfg Config) (func() error, error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if cfg.FilePath != "" && cfg.FilePath != "-" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	handler, err := NewHandler(w, cfg)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	slog.SetDefault(slog.New(handler).With("app", "lyritype"))
	return closeFn, nil
}
