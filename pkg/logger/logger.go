package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFormat is the environment variable name for setting the log format.
	EnvVarLogFormat = "LOG_FORMAT"

	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"

	// FormatConsole writes human readable lines.
	FormatConsole = "console"
)

// NewStructuredLogger creates a new structured logger with the specified log level
// writing to stderr in the format named by LOG_FORMAT (JSON when unset).
// Defined module name and version are included in the logger's context.
// Caller info is enabled for debug level logging only.
// Parameters:
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//
// Returns:
//   - *slog.Logger: A pointer to the configured slog.Logger instance.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return NewLogger(os.Stderr, module, version, level, os.Getenv(EnvVarLogFormat))
}

// NewLogger creates a structured logger writing to w in the given format
// ("json" or "console"). The slog front end is backed by zerolog.
func NewLogger(w io.Writer, module, version, level, format string) *slog.Logger {
	lev := ParseLogLevel(level)

	if strings.EqualFold(strings.TrimSpace(format), FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(toZerologLevel(lev)).With().Timestamp().Logger()

	h := NewZerologHandler(zl)
	h.addSource = lev <= slog.LevelDebug

	return slog.New(h).With("module", module, "version", version)
}

// NewLogLogger creates a new standard library log.Logger that writes logs
// using the slog package with the specified log level.
// Parameters:
//   - level: The log level as a slog.Level.
//
// Returns:
//   - *log.Logger: A pointer to the configured log.Logger instance.
func NewLogLogger(level slog.Level) *log.Logger {
	zl := zerolog.New(os.Stderr).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return slog.NewLogLogger(NewZerologHandler(zl), level)
}

// SetDefaultLogger initializes the structured logger with the
// appropriate log level and sets it as the default logger.
// Defined module name and version are included in the logger's context.
// Parameters:
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//
// Derives log level from the LOG_LEVEL environment variable.
func SetDefaultLogger(module, version string) {
	SetDefaultLoggerWithLevel(module, version, os.Getenv(EnvVarLogLevel))
}

// SetDefaultLoggerWithLevel initializes the structured logger with the specified log level
// Defined module name and version are included in the logger's context.
// Parameters:
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
func SetDefaultLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultLoggerWithFormat is SetDefaultLoggerWithLevel with an explicit output format.
func SetDefaultLoggerWithFormat(module, version, level, format string) {
	slog.SetDefault(NewLogger(os.Stderr, module, version, level, format))
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Parameters:
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//
// Returns:
//   - slog.Level corresponding to the input string. Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	var lev slog.Level

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lev = slog.LevelDebug
	case "warn", "warning":
		lev = slog.LevelWarn
	case "error":
		lev = slog.LevelError
	default:
		lev = slog.LevelInfo
	}

	return lev
}
