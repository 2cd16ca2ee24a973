// internal/report/manager.go
package report

import (
	"fmt"

	"github.com/binaytara/sitecheck/internal/config"
)

// NewWriter builds the writer for the configured report format. Database
// formats require the matching config section; config validation enforces
// that before this runs.
func NewWriter(cfg *config.ReportConfig) (Writer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("report configuration is required")
	}

	switch cfg.Format {
	case "json":
		return newJSONWriter(cfg.File)
	case "csv":
		return newCSVWriter(cfg.File)
	case "xml":
		return newXMLWriter(cfg.File)
	case "yaml":
		return newYAMLWriter(cfg.File)
	case "excel":
		return newExcelWriter(cfg.File)
	case "sqlite", "postgres", "mysql":
		if cfg.Database == nil {
			return nil, fmt.Errorf("report format %q requires a database section", cfg.Format)
		}
		return newSQLWriter(sqlDriverName(cfg.Database.Driver), cfg.Database.DSN, cfg.Database.Table)
	case "mongodb":
		if cfg.MongoDB == nil {
			return nil, fmt.Errorf("report format mongodb requires a mongodb section")
		}
		return newMongoWriter(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", cfg.Format)
	}
}

// sqlDriverName maps the config driver name to the database/sql driver
// registration name.
func sqlDriverName(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return driver
}
