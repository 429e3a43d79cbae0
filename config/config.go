// Package config provides configuration loading and management for edcctl.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/edcclient/client"
)

// Config represents the complete edcctl configuration
type Config struct {
	Management ManagementConfig `yaml:"management"`
	Retry      RetryConfig      `yaml:"retry"`
	Log        LogConfig        `yaml:"log"`
}

// ManagementConfig configures the connector management API
type ManagementConfig struct {
	// URL is the management API base, e.g. http://localhost:29193/management
	URL string `yaml:"url"`
	// APIKey is sent in the X-Api-Key header (empty = no key)
	APIKey string `yaml:"api_key,omitempty"`
	// Timeout bounds a single HTTP exchange
	Timeout time.Duration `yaml:"timeout"`
}

// RetryConfig configures retries of idempotent requests
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BackoffBase time.Duration `yaml:"backoff_base"`
	MaxBackoff  time.Duration `yaml:"max_backoff"`
}

// LogConfig configures the CLI logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	retry := client.DefaultRetryConfig()
	return &Config{
		Management: ManagementConfig{
			URL:     "http://localhost:29193/management",
			Timeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: retry.MaxAttempts,
			BackoffBase: retry.BackoffBase,
			MaxBackoff:  retry.MaxBackoff,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Management.URL == "" {
		return fmt.Errorf("management.url is required")
	}
	u, err := url.Parse(c.Management.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("management.url must be an absolute http(s) URL, got %q", c.Management.URL)
	}
	if c.Management.Timeout < 0 {
		return fmt.Errorf("management.timeout must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ClientRetry converts the retry settings for the management client.
func (c *Config) ClientRetry() client.RetryConfig {
	return client.RetryConfig{
		MaxAttempts:       c.Retry.MaxAttempts,
		BackoffBase:       c.Retry.BackoffBase,
		BackoffMultiplier: 2.0,
		MaxBackoff:        c.Retry.MaxBackoff,
	}
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	overlay, err := readFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	config.Merge(overlay)
	return config, nil
}

// readFile decodes a YAML file without applying defaults, so unset fields
// stay zero and do not mask earlier layers on Merge.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file. The file is only readable
// by the owner since it may hold an API key.
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Management
	if other.Management.URL != "" {
		c.Management.URL = other.Management.URL
	}
	if other.Management.APIKey != "" {
		c.Management.APIKey = other.Management.APIKey
	}
	if other.Management.Timeout != 0 {
		c.Management.Timeout = other.Management.Timeout
	}

	// Retry
	if other.Retry.MaxAttempts != 0 {
		c.Retry.MaxAttempts = other.Retry.MaxAttempts
	}
	if other.Retry.BackoffBase != 0 {
		c.Retry.BackoffBase = other.Retry.BackoffBase
	}
	if other.Retry.MaxBackoff != 0 {
		c.Retry.MaxBackoff = other.Retry.MaxBackoff
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}
