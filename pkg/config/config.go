// Package config provides configuration management for bundlestore. It loads
// and validates the YAML configuration file describing the site, the catalog
// store endpoint and the local cache layout, with sensible defaults for
// everything optional.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/bundlestore/pkg/errors"
	"github.com/glorpus-work/bundlestore/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// Site settings
	Site SiteConfig `yaml:"site"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// SiteConfig describes the site the artifacts are resolved for and the
// catalog store backing it.
type SiteConfig struct {
	// URL is the site base URL; catalog credentials are fetched from it.
	URL string `yaml:"url"`

	// StoreURL is the catalog store endpoint. Defaults to the site URL when
	// empty.
	StoreURL string `yaml:"store_url,omitempty"`

	// SessionToken authenticates against the site when fetching catalog
	// credentials.
	SessionToken string `yaml:"session_token,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir          string   `yaml:"cache_dir,omitempty"`
	FallbackCacheDirs []string `yaml:"fallback_cache_dirs,omitempty"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	ProxyURL    string        `yaml:"proxy_url,omitempty"`

	// Output settings
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = "."
	}

	return &Config{
		Settings: Settings{
			CacheDir:    cacheDir,
			HTTPTimeout: DefaultHTTPTimeout,
			LogLevel:    "info",
		},
	}
}

// LoadConfig reads the configuration from the given path. A missing file
// yields the defaults; a present file is merged over them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not open config file %s", path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Site.URL != "" {
		if _, err := url.ParseRequestURI(c.Site.URL); err != nil {
			return fmt.Errorf("invalid site url %q: %w", c.Site.URL, err)
		}
	}
	if c.Site.StoreURL != "" {
		if _, err := url.ParseRequestURI(c.Site.StoreURL); err != nil {
			return fmt.Errorf("invalid store url %q: %w", c.Site.StoreURL, err)
		}
	}
	if c.Settings.ProxyURL != "" {
		if _, err := url.ParseRequestURI(c.Settings.ProxyURL); err != nil {
			return fmt.Errorf("invalid proxy url %q: %w", c.Settings.ProxyURL, err)
		}
	}
	if c.Settings.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	return nil
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirModeSecure); err != nil {
		return errors.Wrap(err, "could not create config directory")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrapf(err, "could not create config file %s", path)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "could not write config file")
	}
	return enc.Close()
}

// GetStoreURL returns the configured catalog store endpoint, defaulting to
// the site URL.
func (c *Config) GetStoreURL() string {
	if c.Site.StoreURL != "" {
		return c.Site.StoreURL
	}
	return c.Site.URL
}

// GetDefaultConfigPath returns the platform-specific default location of the
// configuration file, e.g. ~/.config/bundlestore/config.yaml on Linux.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine user config directory")
	}
	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}
