// Package api exposes the engine's Prometheus metrics over HTTP, the way
// the teacher's observability server exposes pprof and /metrics.
package api

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartMetricsServer starts the /metrics exposition endpoint in the
// background. Unlike the teacher's debug server this carries no pprof
// routes and no auth wrapper — there's no admin surface in this engine to
// protect, only counters and histograms.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("📊 Metrics server starting on %s", addr)
		log.Printf("   - metrics: http://%s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()
}
