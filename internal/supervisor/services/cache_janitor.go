// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultJanitorInterval applies when none is configured.
const defaultJanitorInterval = 5 * time.Minute

// CachePurger removes expired cache entries and reports how many went.
// Satisfied by *recommend.Engine.
type CachePurger interface {
	PurgeExpired() int
}

// CacheJanitor purges expired recommendation cache entries on an interval.
// The engine already purges lazily on writes when the cache is over
// capacity; the janitor bounds memory held by expired entries when traffic
// is low.
type CacheJanitor struct {
	purger   CachePurger
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheJanitor creates a janitor. A non-positive interval means 5m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheJanitor(purger CachePurger, interval time.Duration, logger zerolog.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = defaultJanitorInterval
	}
	return &CacheJanitor{
		purger:   purger,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
	}
}

// Serve implements suture.Service.
func (j *CacheJanitor) Serve(ctx context.Context) error {
	j.logger.Info().Dur("interval", j.interval).Msg("cache janitor starting")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("cache janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			if removed := j.purger.PurgeExpired(); removed > 0 {
				j.logger.Debug().Int("removed", removed).Msg("expired cache entries purged")
			}
		}
	}
}

// String returns the service name for logging.
func (j *CacheJanitor) String() string {
	return "cache-janitor"
}
