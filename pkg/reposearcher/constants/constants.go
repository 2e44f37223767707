// Package constants defines shared constants and defaults used throughout
// reposearcher.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// EnvironmentEnvVar selects development mode when set to Development.
const EnvironmentEnvVar = "ENVIRONMENT"

// ConfigPathEnvVar is the environment variable name for an explicit config file path.
const ConfigPathEnvVar = "REPOSEARCHER_CONFIG"

// EnvPrefix is the prefix for environment overrides of config keys.
const EnvPrefix = "REPOSEARCHER"

// TokenEnvVar is read as a fallback for the GitHub token.
const TokenEnvVar = "GITHUB_TOKEN"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

const (
	DefaultLanguage  = "Swift"
	DefaultLocale    = "en"
	DefaultBaseURL   = "https://api.github.com"
	DefaultPerPage   = 30
	DefaultTimeout   = 15 * time.Second
	DefaultCacheSize = 64
	DefaultCacheTTL  = 10 * time.Minute
	DefaultLogLevel  = "info"
	DefaultLogFile   = "reposearcher.log"
)

// DefaultLanguages is the language list offered when none is configured.
var DefaultLanguages = []string{
	"Swift",
	"Objective-C",
	"Java",
	"C",
	"C++",
	"Python",
	"C#",
}

// Login form rules.
const (
	MinUsernameLength = 3
	MinPasscodeLength = 6
)

// StarGlyph prefixes star counts in repository rows.
const StarGlyph = "★"
