package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter constructs the admin ServeMux: health probes and
// Prometheus metrics. The forwarder has no data-plane HTTP surface;
// events only flow outward.
func NewRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
