package logger

import (
	"log/slog"

	"token_creator/internal/app/port"
)

// slogAdapter реализует port.Logger поверх slog. Без собственного логгера
// использует глобальные функции пакета.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter creates a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewSlogAdapterFor wraps a specific slog logger, mostly for tests.
func NewSlogAdapterFor(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	if a.l != nil {
		a.l.Info(msg, args...)
		return
	}
	Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.l != nil {
		a.l.Debug(msg, args...)
		return
	}
	Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.l != nil {
		a.l.Warn(msg, args...)
		return
	}
	Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	if a.l != nil {
		a.l.Error(msg, args...)
		return
	}
	Error(msg, args...)
}

// With returns an adapter whose records carry args.
func (a *slogAdapter) With(args ...any) port.Logger {
	base := a.l
	if base == nil {
		ensureInitialized()
		base = globalLogger
	}
	return &slogAdapter{l: base.With(args...)}
}
