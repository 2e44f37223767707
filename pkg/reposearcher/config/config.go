// Package config loads reposearcher settings from a TOML file, the
// environment and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
)

// Config holds application configuration.
type Config struct {
	InitialLanguage string       `mapstructure:"initial_language"`
	Locale          string       `mapstructure:"locale"`
	Languages       []string     `mapstructure:"languages"`
	GitHub          GitHubConfig `mapstructure:"github"`
	Log             LogConfig    `mapstructure:"log"`
}

// GitHubConfig holds API client settings.
type GitHubConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	PerPage   int           `mapstructure:"per_page"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Flag names Load understands. Flags missing from the set are skipped.
const (
	FlagConfig   = "config"
	FlagLanguage = "language"
	FlagLogLevel = "log-level"
	FlagLocale   = "locale"
)

var flagKeys = map[string]string{
	FlagLanguage: "initial_language",
	FlagLogLevel: "log.level",
	FlagLocale:   "locale",
}

// DefaultPath returns ~/.config/reposearcher/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "reposearcher", "config.toml")
}

// Load reads configuration from file, env and flags. Env var overrides use
// prefix REPOSEARCHER_; GITHUB_TOKEN is honored too, and a .env file in the
// working directory is read first.
//
// A missing config file is fine unless its path was given explicitly.
func Load(flags *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// default values
	v.SetDefault("initial_language", constants.DefaultLanguage)
	v.SetDefault("locale", constants.DefaultLocale)
	v.SetDefault("languages", constants.DefaultLanguages)
	v.SetDefault("github.base_url", constants.DefaultBaseURL)
	v.SetDefault("github.token", "")
	v.SetDefault("github.per_page", constants.DefaultPerPage)
	v.SetDefault("github.timeout", constants.DefaultTimeout)
	v.SetDefault("github.cache_size", constants.DefaultCacheSize)
	v.SetDefault("github.cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "reposearcher", constants.DefaultLogFile))
	v.SetDefault("log.level", constants.DefaultLogLevel)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(constants.ConfigPathEnvVar)
	if flags != nil {
		if f := flags.Lookup(FlagConfig); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	explicit := cfgPath != ""
	if explicit {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("github.token", constants.EnvPrefix+"_GITHUB_TOKEN", constants.TokenEnvVar); err != nil {
		return Config{}, fmt.Errorf("bind token env: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.InitialLanguage) == "" {
		errs = append(errs, errors.New("initial_language is empty"))
	}
	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("languages is empty"))
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		errs = append(errs, fmt.Errorf("github.per_page must be between 1 and 100, got %d", c.GitHub.PerPage))
	}
	if c.GitHub.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("github.timeout must be positive, got %s", c.GitHub.Timeout))
	}
	if c.GitHub.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("github.cache_size must not be negative, got %d", c.GitHub.CacheSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
