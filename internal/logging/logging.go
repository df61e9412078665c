// SPDX-License-Identifier: Apache-2.0

// Package logging provides a verbosity-gated *log.Logger, generalized from
// a single debug on/off flag to an off/error/warn/info/debug/trace scale.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/ktosiek/spnego-proxy/internal/config"
)

// Logger gates every Printf-style call behind a minimum verbosity level.
type Logger struct {
	level Verbosity
	out   *log.Logger
}

type Verbosity = config.Verbosity

const (
	Off   = config.VerbosityOff
	Error = config.VerbosityError
	Warn  = config.VerbosityWarn
	Info  = config.VerbosityInfo
	Debug = config.VerbosityDebug
	Trace = config.VerbosityTrace
)

// New builds a Logger writing to w (os.Stderr in production) at the given
// level, with timestamp flags derived from ts.
func New(w io.Writer, level Verbosity, ts config.TimestampGranularity) *Logger {
	flags := 0
	switch ts {
	case config.TimestampSec:
		flags = log.Ldate | log.Ltime
	case config.TimestampMs:
		flags = log.Ldate | log.Ltime | log.Lmicroseconds
	case config.TimestampNs:
		flags = log.Ldate | log.Ltime | log.Lmicroseconds
	case config.TimestampOff:
		flags = 0
	}
	return &Logger{level: level, out: log.New(w, "", flags)}
}

// Default builds a Logger writing to os.Stderr at the given level.
func Default(level Verbosity, ts config.TimestampGranularity) *Logger {
	return New(os.Stderr, level, ts)
}

func (l *Logger) logAt(level Verbosity, prefix, format string, args ...any) {
	if l == nil || level > l.level {
		return
	}
	l.out.Printf(prefix+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) { l.logAt(Error, "ERROR ", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logAt(Warn, "WARN  ", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logAt(Info, "INFO  ", format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logAt(Debug, "DEBUG ", format, args...) }
func (l *Logger) Tracef(format string, args ...any) { l.logAt(Trace, "TRACE ", format, args...) }

// StdLogger exposes a *log.Logger view gated at Error level: every Printf
// call through the returned logger is only emitted if the Logger's level
// is at least Error. Useful for handing to third-party code that only
// knows how to call a plain *log.Logger and has no notion of levels of its
// own.
func (l *Logger) StdLogger() *log.Logger {
	if l == nil || l.level < Error {
		return log.New(io.Discard, "", 0)
	}
	return l.out
}
