// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"timerp/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Result holds the logger and the file it writes to, if any.
type Result struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *Result) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// New creates the application logger. With a log file configured it writes JSON
// to a lumberjack rotating file; otherwise text to stderr.
func New(logCfg config.LogConfig, rotation config.LogRotationConfig) (*Result, error) {
	level, err := ParseLevel(logCfg.Level)
	if err != nil {
		return nil, err
	}

	if logCfg.File == "" {
		return &Result{Logger: NewWithWriter(os.Stderr, level)}, nil
	}

	writer := &lumberjack.Logger{
		Filename:   logCfg.File,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}

	return &Result{
		Logger:   slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr})),
		LogFile:  writer,
		FilePath: logCfg.File,
	}, nil
}

// NewWithWriter creates a text logger on w.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

// replaceAttr standardizes the 'error' key to 'err'.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
