// Package logging provides structured logging for the vepdiff pipeline
// using zerolog. Output is human-readable console format when stderr is a
// terminal and JSON otherwise, so batch runs under a scheduler produce
// machine-parseable logs without configuration.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("variant", "1-100-A-G").Msg("querying validator")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop discards all log output. Used in tests.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = newDefaultLogger()
}

// newDefaultLogger creates a logger with default settings.
func newDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr

	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := levelFromEnv()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // Also update zerolog's global logger
}

// SetLevel sets the global log level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	defaultLogger = defaultLogger.Level(level)
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts a new info level log event.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a new warning level log event.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts a new error level log event.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Fatal starts a new fatal level log event (will exit after logging).
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event { return defaultLogger.Err(err) }

// levelFromEnv returns the log level from environment or defaults.
func levelFromEnv() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
