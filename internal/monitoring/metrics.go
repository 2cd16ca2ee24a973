// internal/monitoring/metrics.go
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for a sitecheck run. All record
// methods are nil-safe so components can run without metrics wired in.
type Metrics struct {
	registry *prometheus.Registry

	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationRetries  *prometheus.CounterVec
	navigationFaults   *prometheus.CounterVec
	notFoundTotal      *prometheus.CounterVec

	scenariosTotal   *prometheus.CounterVec
	scenarioDuration *prometheus.HistogramVec
	scenariosActive  prometheus.Gauge

	screenshotsTotal prometheus.Counter
	reportWrites     *prometheus.CounterVec
	rateLimitWaits   prometheus.Histogram
}

// NewMetrics creates the instrument set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	const ns = "sitecheck"

	return &Metrics{
		registry: reg,

		navigationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "navigations_total",
				Help:      "Total navigations performed, by page and status code.",
			},
			[]string{"page", "status"},
		),
		navigationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "navigation_duration_seconds",
				Help:      "Navigation duration in seconds.",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"page"},
		),
		navigationRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "navigation_retries_total",
				Help:      "Navigations retried after a transient fault.",
			},
			[]string{"page"},
		),
		navigationFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "navigation_faults_total",
				Help:      "Navigation hard failures by fault kind.",
			},
			[]string{"page", "kind"},
		),
		notFoundTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "not_found_total",
				Help:      "Pages judged not-found, by detection source.",
			},
			[]string{"page", "source"},
		),

		scenariosTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "scenarios_total",
				Help:      "Scenario outcomes.",
			},
			[]string{"status"},
		),
		scenarioDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "scenario_duration_seconds",
				Help:      "Scenario execution duration in seconds.",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"scenario"},
		),
		scenariosActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "scenarios_active",
				Help:      "Scenarios currently executing.",
			},
		),

		screenshotsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "screenshots_total",
				Help:      "Failure screenshots captured.",
			},
		),
		reportWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "report_writes_total",
				Help:      "Report sink writes by format and outcome.",
			},
			[]string{"format", "outcome"},
		),
		rateLimitWaits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting on the navigation pacer.",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5},
			},
		),
	}
}

// Registry exposes the underlying registry for the HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordNavigation records one completed navigation.
func (m *Metrics) RecordNavigation(page, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.navigationsTotal.WithLabelValues(page, status).Inc()
	m.navigationDuration.WithLabelValues(page).Observe(d.Seconds())
}

// RecordRetry records a transient-fault retry.
func (m *Metrics) RecordRetry(page string) {
	if m == nil {
		return
	}
	m.navigationRetries.WithLabelValues(page).Inc()
}

// RecordFault records a hard navigation failure.
func (m *Metrics) RecordFault(page, kind string) {
	if m == nil {
		return
	}
	m.navigationFaults.WithLabelValues(page, kind).Inc()
}

// RecordNotFound records a not-found judgement. Source is "status" when the
// HTTP code decided, "content" when the heuristic fired.
func (m *Metrics) RecordNotFound(page, source string) {
	if m == nil {
		return
	}
	m.notFoundTotal.WithLabelValues(page, source).Inc()
}

// ScenarioStarted marks a scenario as running.
func (m *Metrics) ScenarioStarted() {
	if m == nil {
		return
	}
	m.scenariosActive.Inc()
}

// ScenarioFinished records a scenario outcome.
func (m *Metrics) ScenarioFinished(name, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.scenariosActive.Dec()
	m.scenariosTotal.WithLabelValues(status).Inc()
	m.scenarioDuration.WithLabelValues(name).Observe(d.Seconds())
}

// RecordScreenshot counts a captured failure screenshot.
func (m *Metrics) RecordScreenshot() {
	if m == nil {
		return
	}
	m.screenshotsTotal.Inc()
}

// RecordReportWrite counts a report sink write.
func (m *Metrics) RecordReportWrite(format string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.reportWrites.WithLabelValues(format, outcome).Inc()
}

// RecordRateLimitWait records time spent in the navigation pacer.
func (m *Metrics) RecordRateLimitWait(d time.Duration) {
	if m == nil {
		return
	}
	m.rateLimitWaits.Observe(d.Seconds())
}
