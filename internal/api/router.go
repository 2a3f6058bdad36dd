// Package api exposes the service's operational endpoints: liveness and the
// pipeline counters. The service is a background worker; this surface exists
// for probes and dashboards, not for driving work.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xl-idp/unzipping/internal/observability"
	"github.com/xl-idp/unzipping/internal/orchestrator"
)

// NewRouter builds the HTTP surface around the pipeline stats.
func NewRouter(stats *orchestrator.Stats, log *observability.Logger) http.Handler {
	if log == nil {
		log = observability.Nop()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, stats.Snapshot())
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
