// Package logging wraps zerolog with the small component-scoped logger
// shape used throughout this repository's internal packages.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a component-scoped structured logger. The zero value is not
// usable; construct one with New or With.
type Logger struct {
	zl zerolog.Logger
}

// Options configures the root Logger returned by New.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to
	// "info" if empty or unrecognized.
	Level string
	// Format selects "console" (human-readable, colorized when the
	// output is a terminal) or "json" (one object per line). Defaults
	// to "console".
	Format string
	// Writer is the destination; defaults to os.Stderr.
	Writer io.Writer
}

// New builds a root Logger from Options.
func New(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	zl := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(opts.Level))
	return Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child Logger scoped to the named component, e.g.
// logger.With("sim") or logger.With("scheduler.heap").
func (l Logger) With(component string) Logger {
	return Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Debug, Info, Warn and Error log a message at the named level, with
// optional key/value pairs appended as structured fields (must come in
// pairs: key, value, key, value, ...).
func (l Logger) Debug(msg string, kv ...interface{}) { l.log(l.zl.Debug(), msg, kv) }
func (l Logger) Info(msg string, kv ...interface{})  { l.log(l.zl.Info(), msg, kv) }
func (l Logger) Warn(msg string, kv ...interface{})  { l.log(l.zl.Warn(), msg, kv) }
func (l Logger) Error(msg string, kv ...interface{}) { l.log(l.zl.Error(), msg, kv) }

func (l Logger) log(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
