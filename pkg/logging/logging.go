// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package logging is the leveled, structured logger used by bc-hash.
//
// Library packages never log; only the command line front end does, and
// it writes log lines to stderr so that stdout carries nothing but digests.
// Logger is an interface so callers can plug in another backend.
package logging

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug reports per-file progress.
	LevelDebug LogLevel = iota
	// LevelInfo is the default.
	LevelInfo
	// LevelWarn reports recoverable problems such as one unreadable file in a batch.
	LevelWarn
	// LevelError reports failures.
	LevelError
	// LevelSilent disables all logging output.
	LevelSilent
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"silent":  LevelSilent,
	"none":    LevelSilent,
	"off":     LevelSilent,
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// LookupLogLevel parses s and reports an error for unknown names.
func LookupLogLevel(s string) (LogLevel, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error, silent)", s)
}

// ParseLogLevel is LookupLogLevel with LevelInfo for unknown names.
func ParseLogLevel(s string) LogLevel {
	l, _ := LookupLogLevel(s)
	return l
}

// LogFormat represents the output format for log messages.
type LogFormat int

const (
	// FormatText writes one human-readable line per entry.
	FormatText LogFormat = iota
	// FormatJSON writes one JSON object per entry.
	FormatJSON
)

// String returns the string representation of a log format.
func (f LogFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// LookupLogFormat parses s and reports an error for unknown names.
func LookupLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "plain", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (supported: text, json)", s)
	}
}

// ParseLogFormat is LookupLogFormat with FormatText for unknown names.
func ParseLogFormat(s string) LogFormat {
	f, _ := LookupLogFormat(s)
	return f
}

// Logger is a leveled logger with printf-style and line variants and
// attached structured fields.
type Logger interface {
	Debug(format string, args ...interface{})
	Debugln(msg string)
	Info(format string, args ...interface{})
	Infoln(msg string)
	Warn(format string, args ...interface{})
	Warnln(msg string)
	Error(format string, args ...interface{})
	Errorln(msg string)

	// GetLevel returns the current minimum log level.
	GetLevel() LogLevel

	// WithField returns a new Logger with the given key-value pair added.
	WithField(key string, value interface{}) Logger
	// WithFields returns a new Logger with the given fields added.
	WithFields(fields map[string]interface{}) Logger
}

// Default returns an info-level text Logger writing to stderr.
func Default() Logger {
	return NewLoggerWithOptions(DefaultLoggerOptions())
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	opts := DefaultLoggerOptions()
	opts.Level = LevelSilent
	return NewLoggerWithOptions(opts)
}

// EnsureLogger returns l if non-nil, otherwise Default().
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}
