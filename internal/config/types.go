// internal/config/types.go
package config

import (
	"time"

	"github.com/binaytara/sitecheck/internal/browser"
)

// Config is the top-level sitecheck run configuration.
type Config struct {
	Name     string `yaml:"name" json:"name"`
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Workers  int    `yaml:"workers" json:"workers"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	Browser    *browser.Config   `yaml:"browser,omitempty" json:"browser,omitempty"`
	Remote     *RemoteConfig     `yaml:"remote,omitempty" json:"remote,omitempty"`
	RateLimit  RateLimitConfig   `yaml:"rate_limit" json:"rate_limit"`
	Artifacts  ArtifactsConfig   `yaml:"artifacts" json:"artifacts"`
	Report     ReportConfig      `yaml:"report" json:"report"`
	Monitoring MonitoringConfig  `yaml:"monitoring" json:"monitoring"`
	Scenarios  ScenarioSelection `yaml:"scenarios" json:"scenarios"`
}

// RemoteConfig configures the optional remote browser session provider. When
// enabled, the run uses a single shared remote browser and the worker count
// is forced to one.
type RemoteConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	ProviderURL string        `yaml:"provider_url" json:"provider_url"`
	ProjectID   string        `yaml:"project_id" json:"project_id"`
	APIKey      string        `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// RateLimitConfig paces navigations across the whole run.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// ArtifactsConfig controls where screenshots and reports land on disk.
type ArtifactsConfig struct {
	Dir                 string        `yaml:"dir" json:"dir"`
	ScreenshotOnFailure bool          `yaml:"screenshot_on_failure" json:"screenshot_on_failure"`
	MaxAge              time.Duration `yaml:"max_age,omitempty" json:"max_age,omitempty"`
}

// ReportConfig selects the report sink for scenario results.
type ReportConfig struct {
	Format   string          `yaml:"format" json:"format"`
	File     string          `yaml:"file,omitempty" json:"file,omitempty"`
	Database *DatabaseConfig `yaml:"database,omitempty" json:"database,omitempty"`
	MongoDB  *MongoConfig    `yaml:"mongodb,omitempty" json:"mongodb,omitempty"`
}

// DatabaseConfig configures a SQL run-history sink.
type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite, postgres, mysql
	DSN    string `yaml:"dsn" json:"dsn"`
	Table  string `yaml:"table" json:"table"`
}

// MongoConfig configures the MongoDB run-history sink.
type MongoConfig struct {
	URI        string `yaml:"uri" json:"uri"`
	Database   string `yaml:"database" json:"database"`
	Collection string `yaml:"collection" json:"collection"`
}

// MonitoringConfig controls the live dashboard server.
type MonitoringConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}

// ScenarioSelection filters which registered scenarios run. Empty include
// means all; exclude wins over include.
type ScenarioSelection struct {
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Selected reports whether a scenario name passes the selection filters.
func (s ScenarioSelection) Selected(name string) bool {
	for _, excluded := range s.Exclude {
		if excluded == name {
			return false
		}
	}
	if len(s.Include) == 0 {
		return true
	}
	for _, included := range s.Include {
		if included == name {
			return true
		}
	}
	return false
}
