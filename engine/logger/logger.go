// Package logger provides structured logging for the engine.
// It wraps slog with sensible defaults so components can share one handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
	level  = new(slog.LevelVar)
)

// ParseLevel maps a level name to a slog.Level.
// Valid levels: "debug", "info", "warn", "error". Anything else is info.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - slog.Level: the parsed level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Init (re)initializes the global logger writing to stdout at the given level.
// Uses JSON output when OXY_ENV=production, text otherwise.
//
// Parameters:
//   - level: the minimum level to emit
func Init(level string) {
	InitWriter(os.Stdout, level)
}

// InitWriter (re)initializes the global logger writing to w.
//
// Parameters:
//   - w: destination for log records
//   - lvl: the minimum level to emit
func InitWriter(w io.Writer, lvl string) {
	SetLevel(lvl)
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var l *slog.Logger
	if os.Getenv("OXY_ENV") == "production" {
		l = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		l = slog.New(slog.NewTextHandler(w, opts))
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// SetLevel changes the minimum level of the global handler. Loggers already
// derived through With or Component pick up the change.
//
// Parameters:
//   - lvl: the level name, case-insensitive
func SetLevel(lvl string) {
	level.Set(ParseLevel(lvl))
}

// Level returns the current minimum level of the global handler.
func Level() slog.Level {
	return level.Level()
}

// L returns the global logger instance, initializing it at info level on first use.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		Init("info")
		return L()
	}
	return l
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// Component returns a logger tagged with a component name.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}
