package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. EXTFS_LOG_LEVEL.
const Prefix = "EXTFS"

// Config holds all application configuration. The sections are embedded so
// their variables share the top-level prefix.
//
// Keys come from the field names through split_words. There are no
// envconfig name tags: a tagged field would also be read from the bare tag
// name (SHELL, ROOT) when the prefixed variable is unset.
type Config struct {
	LogConfig
	FSConfig
	ShellConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	LogLevel string `split_words:"true" default:"warn"`
}

// FSConfig holds filesystem configuration.
type FSConfig struct {
	// Root resolves relative paths; empty uses them as given
	Root string `split_words:"true"`
	// Trace logs every filesystem call at trace level
	Trace bool `split_words:"true" default:"false"`
}

// ShellConfig holds configuration for the shell command function.
type ShellConfig struct {
	ShellEnabled  bool          `split_words:"true" default:"true"`
	Shell         string        `split_words:"true"`
	ShellArgs     []string      `split_words:"true"`
	ShellTimeout  time.Duration `split_words:"true" default:"0s"`
	CaptureOutput bool          `split_words:"true" default:"false"`
}

// Load loads configuration from environment variables. Any malformed value
// is an error; callers must not fall back to defaults, which enable the shell.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		LogConfig: LogConfig{
			LogLevel: "warn",
		},
		ShellConfig: ShellConfig{
			ShellEnabled: true,
		},
	}
}
