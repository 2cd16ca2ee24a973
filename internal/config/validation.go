// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validReportFormats = map[string]bool{
	"json":     true,
	"csv":      true,
	"xml":      true,
	"yaml":     true,
	"excel":    true,
	"sqlite":   true,
	"postgres": true,
	"mysql":    true,
	"mongodb":  true,
}

var validSQLDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
	"mysql":    true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("validation: base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("validation: base_url %q is not an absolute URL", c.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("validation: base_url scheme %q is not supported", parsed.Scheme)
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("validation: unknown log_level %q", c.LogLevel)
	}

	if err := c.validateReport(); err != nil {
		return err
	}

	if c.Remote != nil && c.Remote.Enabled {
		if c.Remote.ProviderURL == "" {
			return fmt.Errorf("validation: remote.provider_url is required when remote is enabled")
		}
		if c.Remote.ProjectID == "" {
			return fmt.Errorf("validation: remote.project_id is required when remote is enabled")
		}
		if c.Workers != 1 {
			return fmt.Errorf("validation: remote sessions require a single worker, got %d", c.Workers)
		}
	}

	return nil
}

func (c *Config) validateReport() error {
	format := strings.ToLower(c.Report.Format)
	if !validReportFormats[format] {
		return fmt.Errorf("validation: unknown report format %q", c.Report.Format)
	}

	switch format {
	case "sqlite", "postgres", "mysql":
		db := c.Report.Database
		if db == nil {
			return fmt.Errorf("validation: report format %q requires a database section", format)
		}
		if !validSQLDrivers[strings.ToLower(db.Driver)] {
			return fmt.Errorf("validation: unknown database driver %q", db.Driver)
		}
		if db.DSN == "" {
			return fmt.Errorf("validation: database dsn is required")
		}
	case "mongodb":
		mongo := c.Report.MongoDB
		if mongo == nil {
			return fmt.Errorf("validation: report format mongodb requires a mongodb section")
		}
		if mongo.URI == "" {
			return fmt.Errorf("validation: mongodb uri is required")
		}
	default:
		if c.Report.File == "" {
			return fmt.Errorf("validation: report file is required for format %q", format)
		}
	}

	return nil
}
