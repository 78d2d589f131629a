// Package log provides the structured diagnostics sink used across the
// application. It wraps log/slog with component tagging so every record
// names the subsystem that emitted it. Loggers are passed explicitly into
// the components that need them; nothing reads ambient global state.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a component tag.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Writer  io.Writer
	Handler slog.Handler
}

// New creates a logger with the given configuration. Diagnostics go to
// stderr by default so they never mix with report output on stdout.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		w := config.Writer
		if w == nil {
			w = os.Stderr
		}
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level})
	}

	return &Logger{
		Logger:    slog.New(handler),
		component: ComponentApp,
	}
}

// Discard returns a logger that drops everything. Useful for tests and for
// callers that have no diagnostics channel.
func Discard() *Logger {
	return New(Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// WithComponent returns a logger tagged with a specific component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// With returns a logger with additional attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string { return l.component }
