// Package config loads the econstats configuration file.
//
// Configuration lives at ~/.econstats/config.yaml. Values of the form
// ${VAR} or ${VAR:-default} are substituted from the environment before
// parsing. A missing file is not an error; built-in defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the econstats CLI configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// APIConfig holds EconStats API client settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`

	// FallbackTimeoutSec bounds the non-streaming fallback request.
	FallbackTimeoutSec int `yaml:"fallback_timeout_sec"`

	// ResponseHeaderTimeoutSec bounds the wait for response headers.
	// The streaming body itself is not subject to it.
	ResponseHeaderTimeoutSec int `yaml:"response_header_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: log file next to sessions dir
}

// SessionsConfig holds session persistence settings.
type SessionsConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads configuration from the given YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads the config file from [DefaultPath], falling back to
// built-in defaults when no file exists.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in default configuration.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// DefaultDir returns the econstats home directory, ~/.econstats.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".econstats")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://econstats.app"
	}
	if c.API.FallbackTimeoutSec <= 0 {
		c.API.FallbackTimeoutSec = 60
	}
	if c.API.ResponseHeaderTimeoutSec <= 0 {
		c.API.ResponseHeaderTimeoutSec = 30
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(DefaultDir(), "econstats.log")
	}
	if c.Sessions.Dir == "" {
		c.Sessions.Dir = filepath.Join(DefaultDir(), "sessions")
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://, got %q", c.API.BaseURL)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
