// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvConfig         = "ACCELERATE_CONFIG"
	EnvDataDir        = "ACCELERATE_DATA_DIR"
	EnvSourcesDir     = "ACCELERATE_SOURCES_DIR"
	EnvBrowserTimeout = "ACCELERATE_BROWSER_TIMEOUT"
)

// Defaults used when neither a flag, the environment, nor the config file sets a value.
const (
	DefaultDataDir        = "./data"
	DefaultSourcesDir     = "./sources"
	DefaultBrowserTimeout = "30s"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir    string `json:"data_dir,omitempty"`    // Root of the collection documents
	SourcesDir string `json:"sources_dir,omitempty"` // Directory holding scrape source descriptors

	// Scraping
	BrowserTimeout string `json:"browser_timeout,omitempty"` // Page navigation bound, e.g. "30s"
	UserAgent      string `json:"user_agent,omitempty"`      // User agent for static page fetches

	// Behavior
	Verbose bool `json:"verbose,omitempty"`  // Print detailed debug information
	NoColor bool `json:"no_color,omitempty"` // Disable colored output
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:        DefaultDataDir,
		SourcesDir:     DefaultSourcesDir,
		BrowserTimeout: DefaultBrowserTimeout,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns the values set through ACCELERATE_* environment variables.
func FromEnv() Config {
	return Config{
		DataDir:        os.Getenv(EnvDataDir),
		SourcesDir:     os.Getenv(EnvSourcesDir),
		BrowserTimeout: os.Getenv(EnvBrowserTimeout),
	}
}

// Resolve builds the effective configuration: environment over config file over defaults.
// An empty path falls back to ACCELERATE_CONFIG; with neither set no file is read.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	env := FromEnv()
	fromFile := file.MergeWithDefaults(Defaults())
	merged := env.MergeWithDefaults(fromFile)
	merged.Verbose = file.Verbose
	merged.NoColor = file.NoColor

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that directories exist since the store creates them lazily.
func (c *Config) Validate() error {
	if c.BrowserTimeout != "" {
		d, err := time.ParseDuration(c.BrowserTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'browser_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'browser_timeout' must be positive")
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: data_dir is not a directory: %s", c.DataDir)
		}
	}

	return nil
}

// NavigationTimeout returns the parsed browser timeout, or the default when unset or invalid.
func (c *Config) NavigationTimeout() time.Duration {
	if d, err := time.ParseDuration(c.BrowserTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultBrowserTimeout)
	return d
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to layer configuration sources below CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.SourcesDir == "" {
		result.SourcesDir = defaults.SourcesDir
	}
	if result.BrowserTimeout == "" {
		result.BrowserTimeout = defaults.BrowserTimeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
