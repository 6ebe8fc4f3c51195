// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// LogLevel mirrors the syslog-flavored severities COCO cares about, aliased
// directly to [logiface.Level] so a Logger can be backed by a
// github.com/joeycumines/logiface logger (e.g. github.com/joeycumines/stumpy)
// without a translation layer at the call sites.
type LogLevel = logiface.Level

const (
	LogLevelDebug LogLevel = logiface.LevelDebug
	LogLevelInfo  LogLevel = logiface.LevelInformational
	LogLevelWarn  LogLevel = logiface.LevelWarning
	LogLevelError LogLevel = logiface.LevelError
)

// Logger is the sink for COCO's structured diagnostics: runtime start,
// task exit, kernel exit, task-table exhaustion and entry functions that
// return without Exit. Task dispatch, signal delivery, DPC draining and
// WaitPid reaps are not logged. Following the same
// "swappable global, zero-cost no-op default" design the teacher eventloop
// package uses for its own Logger, callers attach a real implementation with
// [SetStructuredLogger] only when they want the output; absent that, every
// call site here costs a single interface method dispatch into a no-op.
type Logger interface {
	// Log emits one structured record at the given level, with msg as the
	// human-readable summary and fields as alternating key/value pairs
	// (keys must be strings). An odd trailing field with no value is
	// dropped. Unrecognized value types fall back to a generic attachment.
	Log(level LogLevel, msg string, fields ...any)
}

// noOpLogger discards everything; it is the default global Logger, so a
// program that never calls [SetStructuredLogger] pays no logging cost.
type noOpLogger struct{}

func (noOpLogger) Log(LogLevel, string, ...any) {}

// logifaceLogger adapts a github.com/joeycumines/logiface logger to
// [Logger]. This is the sanctioned backend: rather than hand-roll a
// JSON/pretty formatter the way the teacher eventloop package's DefaultLogger
// does, COCO defers the actual encoding to logiface plus a concrete backend
// (stumpy, by default — see [NewJSONLogger]).
type logifaceLogger struct {
	logger *logiface.Logger[*stumpy.Event]
}

// NewJSONLogger returns a [Logger] that writes newline-delimited JSON to w
// via github.com/joeycumines/stumpy, the line-oriented JSON encoder used
// elsewhere in this corpus for logiface-backed loggers.
func NewJSONLogger(w io.Writer) Logger {
	return &logifaceLogger{
		logger: stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		),
	}
}

func (l *logifaceLogger) Log(level LogLevel, msg string, fields ...any) {
	b := l.logger.Build(level)
	if b == nil {
		// level disabled, or the builder declined (e.g. rate limited)
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			b = b.Str(key, v)
		case int:
			b = b.Int(key, v)
		case int64:
			b = b.Int64(key, v)
		case uint64:
			b = b.Uint64(key, v)
		case bool:
			b = b.Bool(key, v)
		case error:
			b = b.Err(v)
		default:
			b = b.Any(key, v)
		}
	}
	b.Log(msg)
}

// globalLogger is the package-level default used whenever a Runtime is
// Started without [WithLogger]. Design decision (per the teacher eventloop
// package's logging.go): a package-level variable, not a constructor
// parameter threaded through every call, because almost every program wants
// exactly one logging sink for the whole process.
var globalLogger Logger = noOpLogger{}

// SetStructuredLogger installs logger as the process-wide default. Passing
// nil restores the no-op default.
func SetStructuredLogger(logger Logger) {
	if logger == nil {
		logger = noOpLogger{}
	}
	globalLogger = logger
}

// getGlobalLogger returns the current package-level default.
func getGlobalLogger() Logger {
	return globalLogger
}
