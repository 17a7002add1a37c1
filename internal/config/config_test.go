package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mainstream/internal/constants"
)

// clearEnv blanks every key Load reads; viper ignores empty variables.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TMDB_API_KEY", "TMDB_BASE_URL", "LANGUAGE", "PORT", "SITE_URL",
		"LOG_LEVEL", "LOG_FILE", "DATABASE_PATH", "CACHE_SIZE", "CACHE_TTL",
		"HTTP_TIMEOUT", "PROXY_RATE_LIMIT", "PROXY_RATE_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.TMDBAPIKey)
	assert.False(t, cfg.HasCredential())
	assert.Equal(t, constants.TMDBAPIBase, cfg.TMDBBase)
	assert.Equal(t, "pt-BR", cfg.Language)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, constants.HTTPTimeout, cfg.HTTPTimeout)
	assert.Empty(t, cfg.DatabasePath)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("TMDB_API_KEY", "  0123456789abcdef0123456789abcdef\n")
	t.Setenv("PORT", "8080")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("PROXY_RATE_LIMIT", "0")

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.TMDBAPIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.ProxyRateLimit)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb_api_key: filekey\nlanguage: en-US\nsite_url: https://example.org/\n"), 0o600))

	clearEnv(t)
	t.Setenv("LANGUAGE", "es-ES")

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "filekey", cfg.TMDBAPIKey)
	assert.Equal(t, "es-ES", cfg.Language, "environment wins over file")
	assert.Equal(t, "https://example.org", cfg.SiteURL)
}

func TestLoadMissingExplicitFileIsIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPort, cfg.Port)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{Port: "http"}
	assert.Error(t, cfg.Validate())
}
