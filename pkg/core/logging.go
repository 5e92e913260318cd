package core

import "go.uber.org/zap"

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface the tracer
// and components depend on (spec.md DESIGN NOTES §9: the core must not read
// or write process-wide logging state, only an injected interface).
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps sugar as a core.Logger.
func NewZapLogger(sugar *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{sugar: sugar}
}

// Printf implements Logger by routing through zap's Debugf —
// spec.md §7 says construction/geometry failures log at debug, never crash
// the tracer.
func (l *ZapLogger) Printf(format string, args ...interface{}) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// NopLogger discards everything; useful as a zero-value-safe default and in
// tests that don't care about log output.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
