// Package logging builds the zerolog logger shared by the CLI and the store.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w.
// debug lowers the level to Debug; quiet raises it to Error.
func New(w io.Writer, debug, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.ErrorLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
