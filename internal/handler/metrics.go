package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/newsdesk/newsdesk/internal/metrics"
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

	writeLabeled(w, "newsdesk_registrations_total", "status", snap.Registrations)
	writeLabeled(w, "newsdesk_logins_total", "status", snap.Logins)
	writeLabeled(w, "newsdesk_chat_routes_total", "route", snap.ChatRoutes)
	writeLabeled(w, "newsdesk_news_fetches_total", "outcome", snap.NewsFetches)

	writeMetric(w, "newsdesk_news_fetch_duration_seconds_count %d\n", snap.NewsFetchDurationCount)
	writeMetric(w, "newsdesk_news_fetch_duration_seconds_sum %.6f\n", float64(snap.NewsFetchDurationTotalNs)/1e9)

	writeMetric(w, "newsdesk_headline_cache_hits_total %d\n", snap.HeadlineCacheHits)
	writeMetric(w, "newsdesk_headline_cache_misses_total %d\n", snap.HeadlineCacheMisses)
}

// writeLabeled writes one line per label value, sorted for stable output.
func writeLabeled(w http.ResponseWriter, name, label string, values map[string]uint64) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		writeMetric(w, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
