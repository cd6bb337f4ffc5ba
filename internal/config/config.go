// Package config loads the CLI driver's YAML configuration: the default
// scheduler implementation, the tick-resolution label reported in
// output, and logging settings. There is no database section — this
// kernel has no storage component.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI driver configuration.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SchedulerConfig selects which scheduler.Scheduler implementation the
// CLI binds to a fresh Simulator.
type SchedulerConfig struct {
	// Implementation is one of "list", "set", "heap".
	Implementation string `yaml:"implementation"`
	// TickResolutionLabel is informational text describing the fixed
	// tick resolution, echoed in reports (the resolution itself is a
	// compile-time constant, chrono.TicksPerSecond, not configurable).
	TickResolutionLabel string `yaml:"tick_resolution_label"`
}

// LoggingConfig controls the internal/logging wrapper.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig reads configuration from a YAML file, starting from
// defaults so a partial file only overrides the fields it sets.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := LoadConfigWithDefaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithDefaults returns a Config populated with default values.
func LoadConfigWithDefaults() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Implementation:      "heap",
			TickResolutionLabel: "0.1ns",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Scheduler.Implementation {
	case "list", "set", "heap":
	default:
		return fmt.Errorf("scheduler.implementation must be one of list, set, heap")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}
	return nil
}
