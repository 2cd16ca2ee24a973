// internal/report/excel.go
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Results"

// excelWriter renders the run as a spreadsheet: a summary block followed by
// one row per scenario.
type excelWriter struct {
	filename string
}

func newExcelWriter(filename string) (*excelWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("report file path is required")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	return &excelWriter{filename: filename}, nil
}

func (w *excelWriter) Write(_ context.Context, summary *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", excelSheet)

	header := []interface{}{
		"Scenario", "Page", "Status", "Is 404", "HTTP Status",
		"Duration (ms)", "Error", "Screenshot", "Started At",
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range summary.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Scenario,
			r.Page,
			string(r.Status),
			r.Is404,
			r.HTTPStatus,
			r.Duration.Milliseconds(),
			r.Error,
			r.Screenshot,
			r.StartedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write result row %d: %w", i+1, err)
		}
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Suite", summary.Suite},
		{"Base URL", summary.BaseURL},
		{"Started", summary.StartedAt.Format(time.RFC3339)},
		{"Finished", summary.FinishedAt.Format(time.RFC3339)},
		{"Passed", summary.Passed},
		{"Failed", summary.Failed},
		{"Skipped", summary.Skipped},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.filename); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	return nil
}

func (w *excelWriter) Close() error {
	return nil
}
