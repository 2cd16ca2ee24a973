// internal/suite/runner.go
package suite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/binaytara/sitecheck/internal/artifacts"
	"github.com/binaytara/sitecheck/internal/browser"
	"github.com/binaytara/sitecheck/internal/config"
	"github.com/binaytara/sitecheck/internal/monitoring"
	"github.com/binaytara/sitecheck/internal/report"
)

// EngineFactory opens a fresh browser tab for one scenario.
type EngineFactory func() (browser.Engine, error)

// Runner executes scenarios across a worker pool. Each scenario gets its own
// tab so failures cannot leak state between checks; the pacer spaces tab
// startups so the site is not hammered.
type Runner struct {
	cfg       *config.Config
	newEngine EngineFactory
	store     *artifacts.Store
	metrics   *monitoring.Metrics
	log       logrus.FieldLogger
	limiter   *rate.Limiter
}

// NewRunner builds a runner. store and metrics may be nil.
func NewRunner(cfg *config.Config, newEngine EngineFactory, store *artifacts.Store,
	metrics *monitoring.Metrics, log logrus.FieldLogger) (*Runner, error) {

	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if newEngine == nil {
		return nil, fmt.Errorf("engine factory is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	rps := cfg.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Runner{
		cfg:       cfg,
		newEngine: newEngine,
		store:     store,
		metrics:   metrics,
		log:       log,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Run executes the selected scenarios and returns the run summary. Scenario
// failures land in the summary, not in the returned error; the error covers
// run-level problems only.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*report.Summary, error) {
	selected := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if r.cfg.Scenarios.Selected(s.Name) {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no scenarios selected")
	}

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(selected) {
		workers = len(selected)
	}

	summary := &report.Summary{
		Suite:     r.cfg.Name,
		BaseURL:   r.cfg.BaseURL,
		StartedAt: time.Now(),
		Records:   make([]report.Record, len(selected)),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				summary.Records[i] = r.runScenario(ctx, selected[i])
			}
		}()
	}

	for i := range selected {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	summary.FinishedAt = time.Now()
	summary.Tally()
	return summary, nil
}

func (r *Runner) runScenario(ctx context.Context, s Scenario) report.Record {
	record := report.Record{
		Scenario:  s.Name,
		Page:      s.Page,
		StartedAt: time.Now(),
	}
	log := r.log.WithField("scenario", s.Name)

	waitStart := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		record.Status = report.StatusFailed
		record.Error = err.Error()
		record.Duration = time.Since(record.StartedAt)
		return record
	}
	r.metrics.RecordRateLimitWait(time.Since(waitStart))

	r.metrics.ScenarioStarted()
	defer func() {
		r.metrics.ScenarioFinished(s.Name, string(record.Status), record.Duration)
	}()

	engine, err := r.newEngine()
	if err != nil {
		record.Status = report.StatusFailed
		record.Error = fmt.Sprintf("failed to open tab: %v", err)
		record.Duration = time.Since(record.StartedAt)
		return record
	}
	defer engine.Close()

	env := &Env{
		Browse:  browser.NewNavigator(engine, r.cfg.Browser, log, r.metrics),
		BaseURL: r.cfg.BaseURL,
		Log:     log,
	}

	err = s.Run(ctx, env)
	record.Duration = time.Since(record.StartedAt)

	switch {
	case err == nil:
		record.Status = report.StatusPassed
		log.WithField("duration", record.Duration).Info("scenario passed")
	default:
		if skip, ok := AsSkip(err); ok {
			record.Status = report.StatusSkipped
			record.Is404 = true
			record.HTTPStatus = skip.Status
			record.Error = skip.Error()
			log.WithField("page", skip.Page).Info("scenario skipped, page missing")
			return record
		}

		record.Status = report.StatusFailed
		record.Error = err.Error()
		log.WithError(err).Error("scenario failed")

		if r.store != nil && r.cfg.Artifacts.ScreenshotOnFailure {
			record.Screenshot = r.captureFailure(ctx, engine, s.Name, log)
		}
	}
	return record
}

// captureFailure best-effort screenshots the tab at the point of failure.
func (r *Runner) captureFailure(ctx context.Context, engine browser.Engine, name string, log logrus.FieldLogger) string {
	data, err := engine.Screenshot(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to capture failure screenshot")
		return ""
	}
	path, err := r.store.SaveScreenshot(name, data)
	if err != nil {
		log.WithError(err).Warn("failed to save failure screenshot")
		return ""
	}
	r.metrics.RecordScreenshot()
	return path
}
