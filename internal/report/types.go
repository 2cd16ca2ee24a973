// internal/report/types.go

// Package report persists suite outcomes in the configured format: plain
// files (json, csv, xml, yaml, excel) or databases (sqlite, postgres, mysql,
// mongodb).
package report

import (
	"context"
	"encoding/xml"
	"time"
)

// Status is the outcome of a single scenario.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Record is one scenario outcome.
type Record struct {
	Scenario   string        `json:"scenario" yaml:"scenario" xml:"scenario"`
	Page       string        `json:"page" yaml:"page" xml:"page"`
	Status     Status        `json:"status" yaml:"status" xml:"status"`
	Is404      bool          `json:"is_404" yaml:"is_404" xml:"is404"`
	HTTPStatus int           `json:"http_status,omitempty" yaml:"http_status,omitempty" xml:"httpStatus,omitempty"`
	Duration   time.Duration `json:"duration_ns" yaml:"duration_ns" xml:"durationNs"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty" xml:"error,omitempty"`
	Screenshot string        `json:"screenshot,omitempty" yaml:"screenshot,omitempty" xml:"screenshot,omitempty"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at" xml:"startedAt"`
}

// Summary is a full suite run: counts plus the per-scenario records.
type Summary struct {
	XMLName    xml.Name  `json:"-" yaml:"-" xml:"run"`
	Suite      string    `json:"suite" yaml:"suite" xml:"suite,attr"`
	BaseURL    string    `json:"base_url" yaml:"base_url" xml:"baseURL,attr"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at" xml:"startedAt"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at" xml:"finishedAt"`
	Passed     int       `json:"passed" yaml:"passed" xml:"passed"`
	Failed     int       `json:"failed" yaml:"failed" xml:"failed"`
	Skipped    int       `json:"skipped" yaml:"skipped" xml:"skipped"`
	Records    []Record  `json:"records" yaml:"records" xml:"records>record"`
}

// Tally recomputes the outcome counts from the records.
func (s *Summary) Tally() {
	s.Passed, s.Failed, s.Skipped = 0, 0, 0
	for _, r := range s.Records {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
}

// Writer persists a suite summary.
type Writer interface {
	Write(ctx context.Context, summary *Summary) error
	Close() error
}
