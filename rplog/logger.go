// Package rplog provides the structured logging wrapper shared by every
// planner subsystem. It mirrors the Appender split used elsewhere in the
// rdk family: a small interface around zapcore so call sites never import
// zap directly.
package rplog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Appender is an output for log entries. This is a subset of the zapcore.Core
// interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync flushes any buffered logs. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender writes human readable lines to an io.Writer sink.
type ConsoleAppender struct {
	core zapcore.Core
}

// Write implements Appender.
func (c ConsoleAppender) Write(e zapcore.Entry, fields []zapcore.Field) error {
	return c.core.Write(e, fields)
}

// Sync implements Appender.
func (c ConsoleAppender) Sync() error {
	return c.core.Sync()
}

// Logger wraps a *zap.SugaredLogger with context-aware helpers matching the
// call pattern the planner subsystems use (logger.CDebugf(ctx, ...)).
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewDevelopment returns a Logger suitable for CLI / test usage: human
// readable console output, debug level enabled.
func NewDevelopment() (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	z, err := cfg.Build()
	if err != nil {
		return Logger{}, fmt.Errorf("building development logger: %w", err)
	}
	return Logger{sugar: z.Sugar()}, nil
}

// NewFromCore builds a Logger that writes through the given zapcore.Core
// (for example one built by NewStdoutAppender or NewRotatingFileAppender).
func NewFromCore(core zapcore.Core) Logger {
	return Logger{sugar: zap.New(core).Sugar()}
}

// Named returns a child Logger scoped under the given subsystem name.
func (l Logger) Named(name string) Logger {
	return Logger{sugar: l.sugar.Named(name)}
}

// Debugw logs a debug-level message with key/value pairs.
func (l Logger) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }

// Infow logs an info-level message with key/value pairs.
func (l Logger) Infow(msg string, kv ...interface{}) { l.sugar.Infow(msg, kv...) }

// Warnw logs a warn-level message with key/value pairs.
func (l Logger) Warnw(msg string, kv ...interface{}) { l.sugar.Warnw(msg, kv...) }

// Errorw logs an error-level message with key/value pairs.
func (l Logger) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }

// CDebugf logs a formatted debug message, skipping the write entirely once
// ctx has been cancelled so shutdown paths don't spam a closed sink.
func (l Logger) CDebugf(ctx context.Context, tmpl string, args ...interface{}) {
	select {
	case <-ctx.Done():
		return
	default:
	}
	l.sugar.Debugf(tmpl, args...)
}

// Sync flushes the underlying logger.
func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
