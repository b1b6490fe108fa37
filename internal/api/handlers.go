// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/logging"
	"github.com/tomtom215/storefront-recs/internal/recommend"
)

// readyTimeout bounds the database ping behind /readyz.
const readyTimeout = 2 * time.Second

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReadyResponse is the body of /readyz.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// InvalidateResponse is the body of /cache/invalidate.
type InvalidateResponse struct {
	Invalidated int `json:"invalidated"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, &HealthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: now.Sub(h.startTime).Seconds(),
		Timestamp:     now,
	})
}

// Readyz reports whether the database is reachable.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusOK, &ReadyResponse{Status: "ready", Database: "not_configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		writeJSON(w, http.StatusServiceUnavailable, &ReadyResponse{
			Status:   "unavailable",
			Database: "unreachable",
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, &ReadyResponse{Status: "ready", Database: "ok"})
}

// Stats returns engine counters.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	stats := h.engine.Stats()
	if stats.StageErrors == nil {
		stats.StageErrors = map[string]int64{}
	}
	writeJSON(w, http.StatusOK, &stats)
}

// InvalidateCache clears the recommendation cache.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	n := h.engine.InvalidateCache()
	logging.Ctx(r.Context()).Info().Int("entries", n).Msg("Recommendation cache invalidated via ops API")
	writeJSON(w, http.StatusOK, &InvalidateResponse{Invalidated: n})
}

var _ EngineOps = (*recommend.Engine)(nil)
