// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const TimeFormat = "15:04:05"

// New returns a console logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: TimeFormat,
	}).With().Timestamp().Logger()
}

// Setup installs a console logger writing to w as the global logger.
// Debug messages are shown only when verbose is set.
func Setup(w io.Writer, verbose bool) {
	if w == nil {
		w = io.Discard
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = New(w)
}

// OpenFile opens (appending) a log file for interactive sessions,
// where the terminal belongs to the UI.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = New(os.Stderr)
}
