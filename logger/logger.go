// Package logger provides the shared zerolog console logger for tzgrid.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	log = zerolog.New(output).
		Level(zerolog.ErrorLevel).
		With().
		Timestamp().
		Logger()
}

// GetLogger returns the shared logger instance.
func GetLogger() *zerolog.Logger {
	return &log
}

// SetLogLevel maps a repeated --verbose count to a zerolog level.
func SetLogLevel(verboseCount int) {
	var level zerolog.Level
	switch {
	case verboseCount == 1:
		level = zerolog.WarnLevel
	case verboseCount == 2:
		level = zerolog.InfoLevel
	case verboseCount == 3:
		level = zerolog.DebugLevel
	case verboseCount >= 4:
		level = zerolog.TraceLevel
	default:
		level = zerolog.ErrorLevel
	}
	log = log.Level(level)
}

// Disable silences all logging. Used before handing the terminal to the
// interactive wizard so log lines cannot corrupt the TUI.
func Disable() {
	log = log.Level(zerolog.Disabled)
}
