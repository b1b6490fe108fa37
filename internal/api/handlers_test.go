// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/config"
	"github.com/tomtom215/storefront-recs/internal/middleware"
	"github.com/tomtom215/storefront-recs/internal/recommend"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping called without deadline")
	}
	return p.err
}

type fakeEngine struct {
	stats       recommend.Stats
	invalidated atomic.Int32
}

func (e *fakeEngine) Stats() recommend.Stats { return e.stats }

func (e *fakeEngine) InvalidateCache() int {
	e.invalidated.Add(1)
	return 7
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{RateLimitDisabled: true}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, &fakeEngine{}, "1.2.3")
	h.startTime = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return h.startTime.Add(90 * time.Second) }

	rec := serve(t, NewRouter(testServerConfig(), h), http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected X-Request-ID on response")
	}

	body := decode[HealthResponse](t, rec)
	if body.Status != "ok" || body.Version != "1.2.3" || body.UptimeSeconds != 90 {
		t.Errorf("body = %+v", body)
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		db       Pinger
		wantCode int
		wantDB   string
	}{
		{"database ok", &fakePinger{}, http.StatusOK, "ok"},
		{"database down", &fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unreachable"},
		{"no database", nil, http.StatusOK, "not_configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(testServerConfig(), NewHandler(tt.db, &fakeEngine{}, "test"))
			rec := serve(t, router, http.MethodGet, "/readyz")

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body := decode[ReadyResponse](t, rec)
			if body.Database != tt.wantDB {
				t.Errorf("database = %q, want %q", body.Database, tt.wantDB)
			}
			if tt.wantCode != http.StatusOK && body.Error == "" {
				t.Error("expected error detail when unavailable")
			}
		})
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{stats: recommend.Stats{
		Requests:     10,
		CacheHits:    4,
		Fallbacks:    2,
		CacheEntries: 3,
		Breakers:     map[string]string{"catalog": "open", "orders": "closed"},
	}}
	rec := serve(t, NewRouter(testServerConfig(), NewHandler(nil, engine, "test")), http.MethodGet, "/stats")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode[recommend.Stats](t, rec)
	if body.Requests != 10 || body.CacheHits != 4 || body.Fallbacks != 2 || body.CacheEntries != 3 {
		t.Errorf("stats = %+v", body)
	}
	if body.Breakers["catalog"] != "open" || body.Breakers["orders"] != "closed" {
		t.Errorf("breakers = %v", body.Breakers)
	}
	if !strings.Contains(rec.Body.String(), `"stage_errors":{}`) {
		t.Errorf("stage_errors should encode as an empty object: %s", rec.Body.String())
	}
}

func TestInvalidateCache(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	router := NewRouter(testServerConfig(), NewHandler(nil, engine, "test"))

	if rec := serve(t, router, http.MethodGet, "/cache/invalidate"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	rec := serve(t, router, http.MethodPost, "/cache/invalidate")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, want 200", rec.Code)
	}
	if body := decode[InvalidateResponse](t, rec); body.Invalidated != 7 {
		t.Errorf("invalidated = %d, want 7", body.Invalidated)
	}
	if engine.invalidated.Load() != 1 {
		t.Errorf("InvalidateCache called %d times, want 1", engine.invalidated.Load())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := NewRouter(testServerConfig(), NewHandler(nil, &fakeEngine{}, "test"))
	serve(t, router, http.MethodGet, "/healthz")

	rec := serve(t, router, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Errorf("expected API request counter in exposition")
	}
}

func TestRouter_RateLimited(t *testing.T) {
	t.Parallel()

	cfg := &config.ServerConfig{RateLimitReqs: 1, RateLimitWindow: time.Minute}
	router := NewRouter(cfg, NewHandler(nil, &fakeEngine{}, "test"))

	if rec := serve(t, router, http.MethodGet, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	if rec := serve(t, router, http.MethodGet, "/healthz"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router := NewRouter(testServerConfig(), NewHandler(nil, &fakeEngine{}, "test"))
	if rec := serve(t, router, http.MethodGet, "/recommendations"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
