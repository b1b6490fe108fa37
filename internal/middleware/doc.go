// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package middleware provides the chi-compatible HTTP middleware used by the
ops server.

  - RequestID: honours or generates X-Request-ID and stores it on the context
    for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern so path parameters do not explode cardinality
  - RateLimit: per-IP limiting through go-chi/httprate, counting rejections

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{Requests: 100, Window: time.Minute}))
*/
package middleware
