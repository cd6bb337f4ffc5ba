package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	cfg := LoadConfigWithDefaults()

	if cfg.Scheduler.Implementation != "heap" {
		t.Errorf("expected implementation 'heap', got %q", cfg.Scheduler.Implementation)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Logging.Format)
	}
}

func TestLoadConfigValidYAML(t *testing.T) {
	yaml := `
scheduler:
  implementation: list
  tick_resolution_label: "100ps"

logging:
  level: debug
  format: json
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Scheduler.Implementation != "list" {
		t.Errorf("expected implementation 'list', got %q", cfg.Scheduler.Implementation)
	}
	if cfg.Scheduler.TickResolutionLabel != "100ps" {
		t.Errorf("expected tick_resolution_label '100ps', got %q", cfg.Scheduler.TickResolutionLabel)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(tmpFile, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	_, err := LoadConfig(tmpFile)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid implementation",
			modify:  func(c *Config) { c.Scheduler.Implementation = "bogus" },
			wantErr: "scheduler.implementation must be one of list, set, heap",
		},
		{
			name:    "invalid level",
			modify:  func(c *Config) { c.Logging.Level = "bogus" },
			wantErr: "logging.level must be one of debug, info, warn, error",
		},
		{
			name:    "invalid format",
			modify:  func(c *Config) { c.Logging.Format = "bogus" },
			wantErr: "logging.format must be one of console, json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfigWithDefaults()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Errorf("expected error containing %q", tt.wantErr)
				return
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
