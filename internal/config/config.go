// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/binaytara/sitecheck/internal/browser"
)

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes. Environment variables
// in the document are expanded before parsing, so secrets like the provider
// API key can stay out of the file.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}

	return LoadFromBytes(data)
}

// applyDefaults fills in defaults for anything the file leaves unset.
func applyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = "sitecheck"
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	// A remote session is one shared browser; concurrent tabs from several
	// workers would interfere with each other.
	if cfg.Remote != nil && cfg.Remote.Enabled {
		cfg.Workers = 1
		if cfg.Remote.Timeout <= 0 {
			cfg.Remote.Timeout = 30 * time.Second
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Browser == nil {
		cfg.Browser = browser.DefaultConfig()
	} else {
		defaults := browser.DefaultConfig()
		if cfg.Browser.NavigationTimeout <= 0 {
			cfg.Browser.NavigationTimeout = defaults.NavigationTimeout
		}
		if cfg.Browser.ActionTimeout <= 0 {
			cfg.Browser.ActionTimeout = defaults.ActionTimeout
		}
		if cfg.Browser.AssertTimeout <= 0 {
			cfg.Browser.AssertTimeout = defaults.AssertTimeout
		}
		if cfg.Browser.RetryBackoff <= 0 {
			cfg.Browser.RetryBackoff = defaults.RetryBackoff
		}
		if cfg.Browser.ViewportWidth <= 0 {
			cfg.Browser.ViewportWidth = defaults.ViewportWidth
		}
		if cfg.Browser.ViewportHeight <= 0 {
			cfg.Browser.ViewportHeight = defaults.ViewportHeight
		}
		if cfg.Browser.SettleDelay <= 0 {
			cfg.Browser.SettleDelay = defaults.SettleDelay
		}
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 1.0
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 3
	}

	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = "test-results"
	}
	if cfg.Artifacts.MaxAge <= 0 {
		cfg.Artifacts.MaxAge = 7 * 24 * time.Hour
	}

	if cfg.Report.Format == "" {
		cfg.Report.Format = "json"
	}
	if cfg.Report.File == "" {
		cfg.Report.File = "test-results/report.json"
	}

	if cfg.Monitoring.ListenAddress == "" {
		cfg.Monitoring.ListenAddress = ":9090"
	}
}

// GenerateTemplate produces a starter configuration.
func GenerateTemplate() *Config {
	cfg := &Config{
		Name:    "binaytara-site",
		BaseURL: "https://binaytara.org",
		Workers: 2,
		Artifacts: ArtifactsConfig{
			Dir:                 "test-results",
			ScreenshotOnFailure: true,
		},
		Report: ReportConfig{
			Format: "json",
			File:   "test-results/report.json",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1.0,
			Burst:             3,
		},
	}
	applyDefaults(cfg)
	return cfg
}
