package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config or .env file leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(constants.ConfigPathEnvVar, "")
	t.Setenv(constants.TokenEnvVar, "")
	t.Setenv("REPOSEARCHER_GITHUB_TOKEN", "")
	t.Chdir(t.TempDir())
	return home
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(FlagConfig, "", "")
	flags.String(FlagLanguage, constants.DefaultLanguage, "")
	flags.String(FlagLogLevel, constants.DefaultLogLevel, "")
	flags.String(FlagLocale, constants.DefaultLocale, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultLanguage, cfg.InitialLanguage)
	assert.Equal(t, constants.DefaultLocale, cfg.Locale)
	assert.Equal(t, constants.DefaultLanguages, cfg.Languages)
	assert.Equal(t, constants.DefaultBaseURL, cfg.GitHub.BaseURL)
	assert.Equal(t, constants.DefaultPerPage, cfg.GitHub.PerPage)
	assert.Equal(t, constants.DefaultTimeout, cfg.GitHub.Timeout)
	assert.Equal(t, constants.DefaultCacheTTL, cfg.GitHub.CacheTTL)
	assert.Equal(t, filepath.Join(home, ".local", "state", "reposearcher", constants.DefaultLogFile), cfg.Log.Path)
	assert.Empty(t, cfg.GitHub.Token)
}

func TestLoadFromDefaultPath(t *testing.T) {
	isolate(t)
	writeConfig(t, DefaultPath(), `
initial_language = "Go"
languages = ["Go", "Rust", "Zig"]

[github]
per_page = 50
timeout = "3s"
cache_ttl = "1m"
`)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "Go", cfg.InitialLanguage)
	assert.Equal(t, []string{"Go", "Rust", "Zig"}, cfg.Languages)
	assert.Equal(t, 50, cfg.GitHub.PerPage)
	assert.Equal(t, 3*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, time.Minute, cfg.GitHub.CacheTTL)
}

func TestEnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	writeConfig(t, path, `locale = "en"`)
	t.Setenv(constants.ConfigPathEnvVar, path)
	t.Setenv("REPOSEARCHER_LOCALE", "zh-Hans")
	t.Setenv("REPOSEARCHER_GITHUB_PER_PAGE", "5")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "zh-Hans", cfg.Locale)
	assert.Equal(t, 5, cfg.GitHub.PerPage)
}

func TestTokenFallsBackToGitHubToken(t *testing.T) {
	isolate(t)
	t.Setenv(constants.TokenEnvVar, "ghp_fallback")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "ghp_fallback", cfg.GitHub.Token)
}

func TestTokenFromDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("GITHUB_TOKEN=ghp_dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(constants.TokenEnvVar) })
	require.NoError(t, os.Unsetenv(constants.TokenEnvVar))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "ghp_dotenv", cfg.GitHub.Token)
}

func TestFlagsOverrideEverything(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "flagged.toml")
	writeConfig(t, path, `initial_language = "Java"`)
	t.Setenv("REPOSEARCHER_INITIAL_LANGUAGE", "Python")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--config", path, "--language", "C++", "--log-level", "debug"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "C++", cfg.InitialLanguage)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestUnchangedFlagsKeepFileValues(t *testing.T) {
	isolate(t)
	writeConfig(t, DefaultPath(), `initial_language = "Java"`)

	cfg, err := Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, "Java", cfg.InitialLanguage)
}

func TestExplicitMissingFileFails(t *testing.T) {
	home := isolate(t)
	t.Setenv(constants.ConfigPathEnvVar, filepath.Join(home, "missing.toml"))

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	writeConfig(t, DefaultPath(), `
languages = []

[github]
per_page = 500
`)

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "languages is empty")
	assert.Contains(t, err.Error(), "github.per_page")
}
