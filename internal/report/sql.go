// internal/report/sql.go
package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// resultColumns is the fixed schema every SQL sink writes. The table keeps
// one row per scenario outcome so successive runs accumulate history.
var resultColumns = []string{
	"suite", "base_url", "scenario", "page", "status",
	"is_404", "http_status", "duration_ms", "error", "screenshot", "started_at",
}

// sqlWriter persists runs to a relational database. The same writer serves
// sqlite3, postgres and mysql; only DDL and placeholder syntax differ.
type sqlWriter struct {
	db     *sql.DB
	driver string
	table  string
}

func newSQLWriter(driver, dsn, table string) (*sqlWriter, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	if table == "" {
		table = "results"
	}
	if !validTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	if driver == "sqlite3" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	if driver == "sqlite3" {
		// Single writer keeps SQLite out of lock contention.
		db.SetMaxOpenConns(1)
	}

	w := &sqlWriter{db: db, driver: driver, table: table}
	if err := w.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func validTableName(table string) bool {
	for _, r := range table {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return table != ""
}

func (w *sqlWriter) createTable() error {
	if _, err := w.db.Exec(createTableStatement(w.driver, w.table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

func createTableStatement(driver, table string) string {
	var id, boolean string
	switch driver {
	case "postgres":
		id = "id SERIAL PRIMARY KEY"
		boolean = "BOOLEAN"
	case "mysql":
		id = "id INT AUTO_INCREMENT PRIMARY KEY"
		boolean = "BOOLEAN"
	default:
		id = "id INTEGER PRIMARY KEY AUTOINCREMENT"
		boolean = "INTEGER"
	}

	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s,
	suite TEXT NOT NULL,
	base_url TEXT NOT NULL,
	scenario TEXT NOT NULL,
	page TEXT NOT NULL,
	status TEXT NOT NULL,
	is_404 %s NOT NULL,
	http_status INTEGER,
	duration_ms INTEGER NOT NULL,
	error TEXT,
	screenshot TEXT,
	started_at TIMESTAMP NOT NULL
)`, table, id, boolean)
}

func insertStatement(driver, table string) string {
	placeholders := make([]string, len(resultColumns))
	for i := range resultColumns {
		if driver == "postgres" {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(resultColumns, ", "), strings.Join(placeholders, ", "))
}

func (w *sqlWriter) Write(ctx context.Context, summary *Summary) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertStatement(w.driver, w.table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range summary.Records {
		var httpStatus interface{}
		if r.HTTPStatus != 0 {
			httpStatus = r.HTTPStatus
		}
		_, err := stmt.ExecContext(ctx,
			summary.Suite,
			summary.BaseURL,
			r.Scenario,
			r.Page,
			string(r.Status),
			r.Is404,
			httpStatus,
			r.Duration.Milliseconds(),
			r.Error,
			r.Screenshot,
			r.StartedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", r.Scenario, err)
		}
	}

	return tx.Commit()
}

func (w *sqlWriter) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}
