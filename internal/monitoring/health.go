// internal/monitoring/health.go
package monitoring

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Health tracks process liveness and readiness for the dashboard server.
type Health struct {
	startedAt time.Time
	ready     atomic.Bool
}

// NewHealth creates a health tracker. The process is live immediately and
// ready once SetReady is called (after the browser and sinks are up).
func NewHealth() *Health {
	return &Health{startedAt: time.Now()}
}

// SetReady flips the readiness state.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// LivenessHandler always reports the process as alive.
func (h *Health) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

// ReadinessHandler reports readiness once the run infrastructure is up.
func (h *Health) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	}
}

// HealthHandler returns a JSON snapshot of process health.
func (h *Health) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		snapshot := map[string]interface{}{
			"status":         "ok",
			"ready":          h.ready.Load(),
			"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_alloc":   mem.Alloc,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
