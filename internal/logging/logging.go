// Package logging provides the diagnostic logger used across the generator.
// User-facing progress lines are printed by the CLI; this logger carries the
// detail behind them (pages fetched, rate-limit waits, archive writes).
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var defaultLogger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// Default returns the process-wide logger
func Default() *zerolog.Logger {
	return &defaultLogger
}

// Configure replaces the process-wide logger
func Configure(level, format string) {
	defaultLogger = New(os.Stderr, level, format)
}

// New creates a logger writing to out.
// format is "json", "console" or "auto" (console when out is a terminal).
func New(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	writer := out
	if useConsole(out, format) {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

func useConsole(out io.Writer, format string) bool {
	switch strings.ToLower(format) {
	case "console", "pretty":
		return true
	case "json":
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
