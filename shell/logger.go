package shell

import (
	"log/slog"
)

// Logger is the logging contract of the engine: slog-style leveled logging
// with alternating key/value args.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps a *slog.Logger.
func NewSlogLogger(logger *slog.Logger) Logger {
	return slogLogger{logger: logger}
}

func (l slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// nopLogger discards everything.
type nopLogger struct{}

// NewNopLogger returns a Logger that discards all messages.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
