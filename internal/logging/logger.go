// Package logging wraps log/slog with rotating file output for the console.
// The TUI owns the terminal, so logs only ever go to a file; with no file
// configured every call is a noop.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath string
	Level    slog.Level
	Format   LogFormat
	// MaxSizeMB is the size in MB a log file reaches before it is rotated
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	rotator      *lumberjack.Logger
)

// Init initializes the global logger. An empty FilePath disables logging.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	if config.FilePath == "" {
		globalLogger = noopLogger
		return nil
	}

	rotator = &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}
	globalLogger = New(rotator, config.Level, config.Format)
	return nil
}

// New builds a logger writing to w. Tests use it with a buffer.
func New(w io.Writer, level slog.Level, format LogFormat) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{logger: slog.New(handler), enabled: true}
}

// Get returns the global logger, or a noop logger when logging is disabled.
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

// Component returns the global logger tagged with a component name.
func Component(name string) *Logger {
	return Get().With("component", name)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a new Logger with the given key-value pairs added as context
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), enabled: l.enabled}
}

// IsEnabled reports whether the logger writes anywhere.
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
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

// ParseFormat converts a format name to LogFormat, defaulting to text.
func ParseFormat(format string) LogFormat {
	if strings.EqualFold(format, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Shutdown closes the rotating log file, if any.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = noopLogger
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}
