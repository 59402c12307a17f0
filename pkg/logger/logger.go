// Package logger builds the console's structured zerolog logger. Every
// component receives the logger by value and derives its own sub-logger with
// With(); nothing here is global.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "admin-console"

// New returns a logger at the given level. In development output is a
// colored console stream; everywhere else it is one JSON object per line.
func New(level, env string) zerolog.Logger {
	return NewWithOutput(level, env, os.Stdout)
}

// NewWithOutput is New with an explicit destination writer.
func NewWithOutput(level, env string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// parseLevel maps a config string to a zerolog level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
