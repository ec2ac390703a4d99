// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Logger is an explicitly constructed logger handed to the components that need it.
// The zero value is not usable; use New or Discard.
type Logger struct {
	slog *slog.Logger
	cfg  *Config
}

// New builds a Logger writing text records to output.
func New(cfg Config, output io.Writer) *Logger {
	if output == nil {
		output = io.Discard
	}
	cfg.process()

	opts := slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File) // Base filename is enough
				}
			}
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)
	return &Logger{slog: slog.New(handler), cfg: &cfg}
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *Logger {
	return New(Config{LogLevel: "none"}, io.Discard)
}

// Open resolves cfg.LogFilePath into a writer. "-" and "" mean stderr.
// The returned close function is always non-nil.
func Open(cfg Config) (io.Writer, func() error, error) {
	if cfg.LogFilePath == "" || cfg.LogFilePath == "-" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", cfg.LogFilePath, err)
	}
	return f, f.Close, nil
}

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func (l *Logger) logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...interface{}) {
	if l == nil || l.slog == nil {
		return
	}
	// Check level early to avoid overhead of Callers and Sprintf if disabled
	if !l.slog.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = l.slog.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a tag used by the tag filters.
func (l *Logger) DebugTagf(tag, format string, args ...interface{}) {
	l.logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logAtLevel(slog.LevelError, nil, format, args...)
}

// Slog exposes the underlying slog logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
