// internal/report/file.go
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// openReportFile creates the report file, making parent directories as
// needed.
func openReportFile(filename string) (*os.File, error) {
	if filename == "" {
		return nil, fmt.Errorf("report file path is required")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return file, nil
}

type jsonWriter struct {
	file *os.File
}

func newJSONWriter(filename string) (*jsonWriter, error) {
	file, err := openReportFile(filename)
	if err != nil {
		return nil, err
	}
	return &jsonWriter{file: file}, nil
}

func (w *jsonWriter) Write(_ context.Context, summary *Summary) error {
	encoder := json.NewEncoder(w.file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func (w *jsonWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

type csvWriter struct {
	file *os.File
}

func newCSVWriter(filename string) (*csvWriter, error) {
	file, err := openReportFile(filename)
	if err != nil {
		return nil, err
	}
	return &csvWriter{file: file}, nil
}

var csvHeader = []string{
	"scenario", "page", "status", "is_404", "http_status",
	"duration_ms", "error", "screenshot", "started_at",
}

func (w *csvWriter) Write(_ context.Context, summary *Summary) error {
	cw := csv.NewWriter(w.file)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range summary.Records {
		row := []string{
			r.Scenario,
			r.Page,
			string(r.Status),
			strconv.FormatBool(r.Is404),
			strconv.Itoa(r.HTTPStatus),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
			r.Error,
			r.Screenshot,
			r.StartedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *csvWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

type xmlWriter struct {
	file *os.File
}

func newXMLWriter(filename string) (*xmlWriter, error) {
	file, err := openReportFile(filename)
	if err != nil {
		return nil, err
	}
	return &xmlWriter{file: file}, nil
}

func (w *xmlWriter) Write(_ context.Context, summary *Summary) error {
	if _, err := w.file.WriteString(xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w.file)
	encoder.Indent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode XML report: %w", err)
	}
	_, err := w.file.WriteString("\n")
	return err
}

func (w *xmlWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

type yamlWriter struct {
	file *os.File
}

func newYAMLWriter(filename string) (*yamlWriter, error) {
	file, err := openReportFile(filename)
	if err != nil {
		return nil, err
	}
	return &yamlWriter{file: file}, nil
}

func (w *yamlWriter) Write(_ context.Context, summary *Summary) error {
	encoder := yaml.NewEncoder(w.file)
	encoder.SetIndent(2)
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return encoder.Close()
}

func (w *yamlWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
