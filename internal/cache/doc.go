// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package cache provides a thread-safe, generic in-memory cache with TTL support.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration; an entry is valid while now < expires_at
  - Lazy purging: when a write pushes the entry count above the configured
    maximum, every expired entry is removed
  - Explicit PurgeExpired for periodic janitors
  - Deterministic key hashing with GenerateKey

There is no background goroutine. Callers that want periodic cleanup run
PurgeExpired from a supervised service.

# Usage Example

	c := cache.New[[]Candidate](30*time.Minute, cache.WithMaxEntries(1000))

	key := cache.GenerateKey("recommend", params)
	if v, ok := c.Get(key); ok {
	    return v
	}
	c.Set(key, computed)

# Thread Safety

All methods are safe for concurrent use. Stored values are returned as-is,
so callers caching slices or maps must copy on read or on write.
*/
package cache
