// Package logging builds the zerolog loggers used across a run.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns an info level console logger on stderr.
func New() zerolog.Logger {
	return NewWithLevel("info")
}

// NewWithLevel returns a console logger at the named level; unknown names give info.
func NewWithLevel(level string) zerolog.Logger {
	return NewWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, level)
}

// NewWriter returns a logger writing to w at the named level.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel || l == zerolog.Disabled {
		return zerolog.InfoLevel
	}
	return l
}
