// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package config provides layered configuration for the recommendation daemon.

# Configuration Sources

Values are resolved in order, later sources winning:
  - Built-in defaults (defaultConfig)
  - YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/storefront-recs/config.yaml
  - Environment variables mapped by envTransformFunc

# Environment Variables

Recommendation engine:
  - RECOMMEND_MIN_CONFIDENCE, RECOMMEND_MAX_RESULTS, RECOMMEND_FALLBACK_RESULTS
  - RECOMMEND_WEIGHT_COLLABORATIVE, RECOMMEND_WEIGHT_CONTENT,
    RECOMMEND_WEIGHT_POPULARITY, RECOMMEND_WEIGHT_BUSINESS
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES,
    RECOMMEND_CACHE_JANITOR_INTERVAL
  - RECOMMEND_FETCH_TIMEOUT, RECOMMEND_POPULARITY_WINDOW, RECOMMEND_RECENCY_DAYS
  - RECOMMEND_BREAKER_ENABLED, RECOMMEND_BREAKER_MAX_FAILURES,
    RECOMMEND_BREAKER_OPEN_TIMEOUT

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, FIXTURE_PATH

Ops server:
  - OPS_HOST, OPS_PORT, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Seasonal rules are only configurable from the YAML file:

	recommend:
	  seasonal:
	    - season: winter
	      categories: [outerwear, heating]
	    - months: [11, 12]
	      categories: [gifts]
	      bonus: 0.15
*/
package config
