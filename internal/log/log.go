// Package log provides category-tagged structured logging for taskboard.
//
// Every call names a Category so log lines can be filtered per subsystem.
// The backend is a single shared slog logger writing to a file (or stderr
// before Init is called).
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category identifies the subsystem emitting a log line.
type Category string

const (
	CatDB      Category = "db"
	CatService Category = "service"
	CatConfig  Category = "config"
	CatCache   Category = "cache"
	CatWatch   Category = "watch"
	CatCLI     Category = "cli"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logFile *os.File
)

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init redirects logging to the given file at the given level. An empty path
// keeps stderr. Creates the parent directory if needed.
func Init(path, level string) error {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from user config
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		if logFile != nil {
			_ = logFile.Close()
		}
		logFile = f
		w = f
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	return nil
}

// Close releases the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func log(level slog.Level, cat Category, msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Log(context.Background(), level, msg, append([]any{"cat", string(cat)}, args...)...)
}

// Debug logs at debug level with alternating key/value args.
func Debug(cat Category, msg string, args ...any) { log(slog.LevelDebug, cat, msg, args...) }

// Info logs at info level with alternating key/value args.
func Info(cat Category, msg string, args ...any) { log(slog.LevelInfo, cat, msg, args...) }

// Warn logs at warn level with alternating key/value args.
func Warn(cat Category, msg string, args ...any) { log(slog.LevelWarn, cat, msg, args...) }

// Error logs at error level with alternating key/value args.
func Error(cat Category, msg string, args ...any) { log(slog.LevelError, cat, msg, args...) }

// ErrorErr logs an error value at error level alongside the message.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	log(slog.LevelError, cat, msg, append([]any{"error", err}, args...)...)
}
