package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// loggerPtr holds the active logger. It discards everything until
// setupLogging installs a file-backed one, which keeps tests quiet.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// SetLogger replaces the active logger. nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

type LogConfig struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

func (c LogConfig) Validate() error {
	switch c.Format {
	case "text", "json", "":
	default:
		return fmt.Errorf("unsupported log format: '%s'", c.Format)
	}
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unsupported log level: '%s'", s)
	}
	return level, nil
}

// setupLogging opens the log file and installs a logger writing to it. The
// terminal belongs to the UI, so logs never go to stdout.
func setupLogging(cfg LogConfig) (io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := parseLevel(cfg.Level)
	path := cfg.File
	if path == "" {
		path = filepath.Join(os.TempDir(), "scrawl.log")
	}
	f, err := os.OpenFile(expandHome(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	options := slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(f, &options)
	default:
		handler = slog.NewTextHandler(f, &options)
	}
	SetLogger(slog.New(handler))
	return f, nil
}
