// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/pkg/security"
)

const (
	// Default configuration file name, looked up in the working directory
	defaultConfigName = "config"
)

// Config holds the application configuration.
// It is loaded once at process start and passed to the components that need
// it; nothing else reads the environment.
type Config struct {
	// Metadata provider credential. Empty is allowed at load time: the proxy
	// answers 500 and pages fail until it is set.
	TMDBAPIKey string `mapstructure:"tmdb_api_key"`
	TMDBBase   string `mapstructure:"tmdb_base_url"`
	Language   string `mapstructure:"language"`

	// HTTP server
	Port    string `mapstructure:"port"`
	SiteURL string `mapstructure:"site_url"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// Storage settings. An empty DatabasePath keeps the cache in memory only.
	DatabasePath string        `mapstructure:"database_path"`
	CacheSize    int           `mapstructure:"cache_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`

	// Proxy protection, requests per second per client IP. Zero disables.
	ProxyRateLimit float64 `mapstructure:"proxy_rate_limit"`
	ProxyRateBurst int     `mapstructure:"proxy_rate_burst"`
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
// CONFIG_FILE selects the file; otherwise ./config.{yaml,json} is used if present.
func Load() (*Config, error) {
	return load(viper.New(), os.Getenv("CONFIG_FILE"))
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb_api_key", "")
	v.SetDefault("tmdb_base_url", constants.TMDBAPIBase)
	v.SetDefault("language", constants.DefaultLanguage)
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("site_url", constants.DefaultSiteURL)
	v.SetDefault("log_level", constants.DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("database_path", "")
	v.SetDefault("cache_size", constants.DefaultCacheSize)
	v.SetDefault("cache_ttl", constants.RevalidateWindow)
	v.SetDefault("http_timeout", constants.HTTPTimeout)
	v.SetDefault("proxy_rate_limit", constants.DefaultProxyRateLimit)
	v.SetDefault("proxy_rate_burst", constants.DefaultProxyRateBurst)
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	c.TMDBAPIKey = security.SanitizeAPIKey(c.TMDBAPIKey)
	c.TMDBBase = strings.TrimRight(c.TMDBBase, "/")
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")

	if c.TMDBBase == "" {
		c.TMDBBase = constants.TMDBAPIBase
	}
	if c.Language == "" {
		c.Language = constants.DefaultLanguage
	}
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not a number", c.Port)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = constants.RevalidateWindow
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = constants.HTTPTimeout
	}
	if c.ProxyRateLimit < 0 {
		return fmt.Errorf("proxy_rate_limit must not be negative, got %v", c.ProxyRateLimit)
	}
	if c.ProxyRateBurst <= 0 {
		c.ProxyRateBurst = constants.DefaultProxyRateBurst
	}

	return nil
}

// HasCredential reports whether a metadata provider key is configured.
func (c *Config) HasCredential() bool {
	return c != nil && c.TMDBAPIKey != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
