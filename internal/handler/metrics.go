package handler

import (
	"fmt"
	"net/http"

	"github.com/findash/findash/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	kinds := []metrics.Kind{metrics.KindUser, metrics.KindExpense, metrics.KindIncome, metrics.KindGoal}
	for _, kind := range kinds {
		writeMetric(w, "findash_records_created_total{kind=%q} %d\n", kind, snap.Created[kind])
		writeMetric(w, "findash_records_updated_total{kind=%q} %d\n", kind, snap.Updated[kind])
		writeMetric(w, "findash_records_deleted_total{kind=%q} %d\n", kind, snap.Deleted[kind])
	}

	writeMetric(w, "findash_user_cache_hits_total %d\n", snap.UserCacheHits)
	writeMetric(w, "findash_user_cache_misses_total %d\n", snap.UserCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
