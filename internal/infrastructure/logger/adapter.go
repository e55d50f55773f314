package logger

import (
	"go.uber.org/zap"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

// LoggerAdapter exposes a zap logger through the kv-style LoggerPort.
type LoggerAdapter struct {
	l     *zap.SugaredLogger
	close func() error
}

// NewLoggerAdapter wraps an existing zap logger. Close only syncs it.
func NewLoggerAdapter(l *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{l: l.Sugar()}
}

func NewNop() *LoggerAdapter {
	return NewLoggerAdapter(zap.NewNop())
}

func (a *LoggerAdapter) Debug(msg string, args ...any) {
	a.l.Debugw(msg, args...)
}

func (a *LoggerAdapter) Info(msg string, args ...any) {
	a.l.Infow(msg, args...)
}

func (a *LoggerAdapter) Warn(msg string, args ...any) {
	a.l.Warnw(msg, args...)
}

func (a *LoggerAdapter) Error(msg string, args ...any) {
	a.l.Errorw(msg, args...)
}

func (a *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{l: a.l.With(key, value), close: a.close}
}

func (a *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{l: a.l.With(args...), close: a.close}
}

// Zap returns the underlying logger for libraries that want one directly.
func (a *LoggerAdapter) Zap() *zap.Logger {
	return a.l.Desugar()
}

func (a *LoggerAdapter) Close() error {
	_ = a.l.Sync()
	if a.close == nil {
		return nil
	}
	return a.close()
}
