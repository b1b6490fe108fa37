// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package metrics provides Prometheus metrics collection and export for observability.

Instruments are registered with the default registry through promauto and are
exposed by the ops HTTP service at /metrics.

# Available Metrics

Recommendation Metrics:
  - recommend_requests_total: Requests by path (cache_hit, computed, fallback)
  - recommend_duration_seconds: End-to-end latency by path (histogram)
  - recommend_results: Candidates returned per request (histogram)
  - recommend_stage_errors_total: Pipeline failures. Labels: kind, stage
  - recommend_scorer_duration_seconds: Per-scorer latency. Labels: scorer
  - recommend_singleflight_shared_total: Callers that reused an in-flight computation

Cache Metrics:
  - cache_hits_total, cache_misses_total: Labels: cache_type
  - cache_entries: Current entries (gauge). Labels: cache_type
  - cache_evictions_total: Expired entries purged. Labels: cache_type

Database Metrics:
  - duckdb_query_duration_seconds: Labels: operation, table
  - duckdb_query_errors_total: Labels: operation, table, error_type

Ops HTTP Metrics:
  - api_requests_total: Labels: method, endpoint, status_code
  - api_request_duration_seconds: Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Labels: endpoint

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open. Labels: name
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

System Metrics:
  - app_info: Labels: version, go_version

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "products", time.Since(start), err)
*/
package metrics
