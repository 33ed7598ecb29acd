// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small leveled-logging facade, kratos-style: a Logger
// sink, a level filter, and a Helper adding printf-style convenience
// methods (NewStdLogger, NewHelper, NewFilter, FilterLevel, Level
// constants, Debugf/Infof/Warnf/Errorf) over it.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is a log severity.
type Level int

// Severities, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every implementation in this package satisfies.
type Logger interface {
	Log(level Level, keyvals ...any) error
}

// stdLogger writes "LEVEL key=val key=val" lines to a writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes plain lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, keyvals ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "%s %s\n", level, formatKeyvals(keyvals))
	return err
}

func formatKeyvals(keyvals []any) string {
	if len(keyvals) == 0 {
		return ""
	}
	s := ""
	for i := 0; i < len(keyvals); i += 2 {
		if i > 0 {
			s += " "
		}
		if i+1 < len(keyvals) {
			s += fmt.Sprintf("%v=%v", keyvals[i], keyvals[i+1])
		} else {
			s += fmt.Sprintf("%v", keyvals[i])
		}
	}
	return s
}

// filter wraps a Logger, dropping records below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures a filtering Logger built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level that passes through the filter.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.min = level }
}

// NewFilter returns a Logger that forwards to next only records at or above
// the configured minimum level (default LevelDebug, i.e. everything).
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...any) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods over a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...any) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, "msg", fmt.Sprintf(format, args...))
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...any) { h.log(LevelDebug, format, args...) }

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...any) { h.log(LevelInfo, format, args...) }

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...any) { h.log(LevelWarn, format, args...) }

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...any) { h.log(LevelError, format, args...) }

// Default returns a Helper writing warnings and above to stderr, the
// zero-configuration logger compiler.Options/decompiler.Options fall back to.
func Default() *Helper {
	return NewHelper(NewFilter(NewStdLogger(os.Stderr), FilterLevel(LevelWarn)))
}
