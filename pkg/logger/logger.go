// pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	// Console output for local runs; release mode switches to raw JSON.
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Str("service", "ibp-backend").
		Logger()
}

// Configure adjusts the global logger for the given server mode and level.
// In release mode the console writer is replaced with plain JSON to stdout.
func Configure(mode, levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if mode == "release" {
		Log = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Str("service", "ibp-backend").
			Logger()
		return
	}
	Log = Log.Level(level)
}
