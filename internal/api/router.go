// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/storefront-recs/internal/config"
	"github.com/tomtom215/storefront-recs/internal/middleware"
	"github.com/tomtom215/storefront-recs/internal/recommend"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EngineOps is the slice of *recommend.Engine the ops surface needs.
type EngineOps interface {
	Stats() recommend.Stats
	InvalidateCache() int
}

// Handler holds the dependencies of the ops routes.
type Handler struct {
	db        Pinger
	engine    EngineOps
	version   string
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a Handler. db may be nil, in which case /readyz only
// reports the engine.
func NewHandler(db Pinger, engine EngineOps, version string) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		version:   version,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// NewRouter builds the chi router for the ops server.
func NewRouter(cfg *config.ServerConfig, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Requests: cfg.RateLimitReqs,
		Window:   cfg.RateLimitWindow,
		Disabled: cfg.RateLimitDisabled,
	}))

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/stats", h.Stats)
	r.Post("/cache/invalidate", h.InvalidateCache)

	return r
}
