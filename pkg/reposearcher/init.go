// Package reposearcher provides the presentation core of a GitHub repository
// browser: per-screen Input to Output transformations built on the rx package,
// and a declarative Scene/Transition navigator in the router package.
//
// The core never touches a presentation surface. The tui package binds the
// contracts to a terminal; any other surface only needs to feed Input streams
// and observe Output streams.
package reposearcher

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/internal"
)

// Options configures logging and theming.
type Options struct {
	LogPath         string // Full path for the log file including filename (creates parent directories)
	LogLevel        string // Application log level name ("debug", "info", "warn", "error")
	Console         bool   // Also write log records to stderr; leave off when a terminal UI owns the screen
	AccentColorHex  uint32 // Custom accent color for the terminal theme, 0 keeps the default
	InternalLogging bool   // Emit debug records from the rx and router plumbing
}

// Init configures logging and theming.
// Call it once, before anything logs.
func Init(options Options) {
	internal.SetConsole(options.Console)
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if options.InternalLogging || os.Getenv(constants.EnvironmentEnvVar) == constants.Development {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	if options.AccentColorHex != 0 {
		theme := internal.GetTheme()
		theme.AccentColor = internal.HexToColor(options.AccentColorHex)
		theme.HighlightColor = theme.AccentColor
		internal.SetTheme(theme)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// Logger returns the application logger tagged with a component name.
func Logger(component string) *slog.Logger {
	return internal.ComponentLogger(component)
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
