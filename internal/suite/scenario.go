// internal/suite/scenario.go

// Package suite runs check scenarios against the website and collects their
// outcomes into a report summary.
package suite

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/binaytara/sitecheck/internal/pages"
)

// Scenario is one named check. Run receives a fresh browser tab through the
// environment; returning a SkipError marks the scenario skipped rather than
// failed.
type Scenario struct {
	Name string
	Page string
	Run  func(ctx context.Context, env *Env) error
}

// Env is the per-scenario execution environment: a browsing capability bound
// to a fresh tab, the site under check and a scoped logger.
type Env struct {
	Browse  pages.Browsing
	BaseURL string
	Log     logrus.FieldLogger
}

// SkipError marks a scenario intentionally skipped because the page it
// depends on does not exist. The message names the page and the observed
// status so the report reads without cross-referencing.
type SkipError struct {
	Page   string
	Status int
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("page %s returned status %d, skipping dependent checks", e.Page, e.Status)
}

// Skip builds the skip signal for a missing page.
func Skip(page string, status int) error {
	return &SkipError{Page: page, Status: status}
}

// AsSkip extracts the skip signal from a scenario error.
func AsSkip(err error) (*SkipError, bool) {
	var skip *SkipError
	if errors.As(err, &skip) {
		return skip, true
	}
	return nil, false
}
