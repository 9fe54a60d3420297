// Package config handles configuration loading and validation for fmca.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// IMPath is the external change-tracking CLI executable.
	IMPath string `yaml:"im_path"`
	// TimeoutSeconds bounds each external command invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// DryRun makes `fmca run` simulate commands unless overridden by flag.
	DryRun bool `yaml:"dry_run"`
	// WWID is the operator identity recorded in the audit ledger.
	// Falls back to $USER when unset.
	WWID string `yaml:"wwid"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IMPath:         "im",
		TimeoutSeconds: 300,
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by an explicit-but-partial config file.
func (c *Config) applyDefaults() {
	if c.IMPath == "" {
		c.IMPath = "im"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 300
	}
}

// Timeout returns the per-command timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveWWID returns the configured operator identity, falling back to the
// invoking user and finally "unknown".
func (c *Config) ResolveWWID() string {
	if c.WWID != "" {
		return c.WWID
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}
