// internal/monitoring/dashboard.go
package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SummaryFunc supplies the current run summary for the dashboard API.
type SummaryFunc func() interface{}

// Dashboard serves metrics, health and a live run summary while a check run
// is in progress.
type Dashboard struct {
	metrics *Metrics
	health  *Health
	summary SummaryFunc
	log     logrus.FieldLogger
	server  *http.Server
}

// NewDashboard wires the dashboard endpoints onto the given address.
func NewDashboard(addr string, metrics *Metrics, health *Health, summary SummaryFunc, log logrus.FieldLogger) *Dashboard {
	d := &Dashboard{
		metrics: metrics,
		health:  health,
		summary: summary,
		log:     log,
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	r.HandleFunc("/health", health.HealthHandler()).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.ReadinessHandler()).Methods(http.MethodGet)
	r.HandleFunc("/live", health.LivenessHandler()).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", d.summaryHandler).Methods(http.MethodGet)

	d.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return d
}

func (d *Dashboard) summaryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if d.summary == nil {
		w.Write([]byte("{}"))
		return
	}
	if err := json.NewEncoder(w).Encode(d.summary()); err != nil {
		d.log.WithError(err).Warn("failed to encode run summary")
	}
}

// Start runs the dashboard server until the context is done.
func (d *Dashboard) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.server.Shutdown(shutdownCtx)
	}()

	go func() {
		d.log.WithField("addr", d.server.Addr).Info("dashboard listening")
		if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			d.log.WithError(err).Error("dashboard server stopped")
		}
	}()
}
