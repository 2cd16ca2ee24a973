// internal/browser/navigator.go
package browser

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/binaytara/sitecheck/internal/faults"
	"github.com/binaytara/sitecheck/internal/monitoring"
)

// NavigationResult reports the outcome of one navigation attempt. A missing
// page is an expected outcome, not an error: callers branch on Is404 and skip
// the dependent checks.
//
// Invariants:
//   - Is404 is true whenever Status is 404.
//   - Content-only detection backfills Status to 404; Status is never left
//     absent alongside Is404 = true.
//   - A known non-404 Status is never paired with Is404 = true.
type NavigationResult struct {
	// Response is the protocol response, nil when the navigation produced
	// none (same-document navigation, intercepted request).
	Response *Response
	// Is404 is true when the navigation is judged a not-found outcome by
	// either the status code or the content heuristic.
	Is404 bool
	// Status is the HTTP status, 0 when absent.
	Status int
}

// Navigator performs navigations against an Engine and applies the
// status-then-content not-found decision and the single-retry policy. It is
// the shared capability every page object forwards to.
type Navigator struct {
	engine        Engine
	log           logrus.FieldLogger
	metrics       *monitoring.Metrics
	backoff       time.Duration
	assertTimeout time.Duration
}

// NewNavigator builds a navigator over an engine. cfg, log and metrics may
// be nil; defaults apply.
func NewNavigator(engine Engine, cfg *Config, log logrus.FieldLogger, metrics *monitoring.Metrics) *Navigator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	assertTimeout := cfg.AssertTimeout
	if assertTimeout <= 0 {
		assertTimeout = DefaultAssertTimeout
	}
	return &Navigator{
		engine:        engine,
		log:           log,
		metrics:       metrics,
		backoff:       backoff,
		assertTimeout: assertTimeout,
	}
}

// Engine exposes the underlying engine for element-level work.
func (n *Navigator) Engine() Engine {
	return n.engine
}

// Navigate attempts a navigation and reports the outcome. The 404 case never
// raises; transient faults get exactly one retry after a fixed backoff; DNS,
// TLS, timeout and closed-page faults propagate unmodified.
func (n *Navigator) Navigate(ctx context.Context, target string, opts NavigateOptions) (NavigationResult, error) {
	if strings.TrimSpace(target) == "" {
		return NavigationResult{}, fmt.Errorf("navigation target cannot be empty")
	}
	opts = opts.withDefaults()
	start := time.Now()

	resp, err := n.engine.Navigate(ctx, target, opts)
	if err != nil {
		if !faults.Retryable(err) {
			n.metrics.RecordFault(target, faults.Classify(err).String())
			return NavigationResult{}, err
		}

		n.log.WithError(err).WithField("target", target).Warn("transient navigation fault, retrying once")
		n.metrics.RecordRetry(target)
		select {
		case <-ctx.Done():
			return NavigationResult{}, ctx.Err()
		case <-time.After(n.backoff):
		}

		resp, err = n.engine.Navigate(ctx, target, opts)
		if err != nil {
			// The second fault propagates as-is, whatever its kind.
			n.metrics.RecordFault(target, faults.Classify(err).String())
			return NavigationResult{}, err
		}
	}

	result := n.judge(ctx, target, resp)
	n.metrics.RecordNavigation(target, statusLabel(result.Status), time.Since(start))
	return result, nil
}

// judge applies the two-stage not-found decision table:
//
//	status == 404              -> not found, heuristic skipped
//	status present, not 404    -> found, heuristic suppressed
//	status absent              -> content heuristic decides, 404 backfilled
//
// A response whose status could not be retrieved arrives with Status 0 and
// is treated the same as an absent response.
func (n *Navigator) judge(ctx context.Context, target string, resp *Response) NavigationResult {
	status := 0
	if resp != nil {
		status = resp.Status
	}

	result := NavigationResult{Response: resp, Status: status}
	switch {
	case status == http.StatusNotFound:
		result.Is404 = true
		n.metrics.RecordNotFound(target, "status")
	case status != 0:
		// Known non-404 status is authoritative.
	default:
		if n.LooksLikeNotFound(ctx) {
			result.Is404 = true
			result.Status = http.StatusNotFound
			n.metrics.RecordNotFound(target, "content")
		}
	}
	return result
}

func statusLabel(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status)
}
