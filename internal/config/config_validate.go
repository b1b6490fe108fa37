// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateRecommend validates engine settings that can be checked without
// building the engine. The engine re-validates its own derived config.
func (c *Config) validateRecommend() error {
	r := &c.Recommend

	if err := validateWeights(&r.Weights); err != nil {
		return err
	}
	if err := validateThresholds(&r.Thresholds); err != nil {
		return err
	}

	if r.MaxResults <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be positive, got %d", r.MaxResults)
	}
	if r.FallbackResults < 0 {
		return fmt.Errorf("RECOMMEND_FALLBACK_RESULTS must be non-negative, got %d", r.FallbackResults)
	}
	if r.FetchTimeout < 0 {
		return fmt.Errorf("RECOMMEND_FETCH_TIMEOUT must be non-negative, got %v", r.FetchTimeout)
	}

	if r.Cache.Enabled {
		if r.Cache.TTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive, got %v", r.Cache.TTL)
		}
		if r.Cache.MaxEntries <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be positive, got %d", r.Cache.MaxEntries)
		}
	}
	if r.Cache.JanitorInterval < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_JANITOR_INTERVAL must be non-negative, got %v", r.Cache.JanitorInterval)
	}

	if r.Windows.Popularity <= 0 {
		return fmt.Errorf("RECOMMEND_POPULARITY_WINDOW must be positive, got %v", r.Windows.Popularity)
	}
	if r.Windows.RecencyDays <= 0 {
		return fmt.Errorf("RECOMMEND_RECENCY_DAYS must be positive, got %v", r.Windows.RecencyDays)
	}

	if r.Breaker.Enabled && r.Breaker.MaxFailures == 0 {
		return fmt.Errorf("RECOMMEND_BREAKER_MAX_FAILURES must be positive when the breaker is enabled")
	}

	return validateSeasonalRules(r.Seasonal)
}

func validateWeights(w *WeightsConfig) error {
	weights := map[string]float64{
		"collaborative": w.Collaborative,
		"content":       w.Content,
		"popularity":    w.Popularity,
		"business":      w.Business,
	}
	for name, v := range weights {
		if v < 0 {
			return fmt.Errorf("recommend.weights.%s must be non-negative, got %v", name, v)
		}
	}
	if sum := w.Collaborative + w.Content + w.Popularity + w.Business; sum > 1.0001 {
		return fmt.Errorf("recommend.weights must sum to at most 1, got %v", sum)
	}
	return nil
}

func validateThresholds(t *ThresholdsConfig) error {
	thresholds := map[string]float64{
		"min_confidence":       t.MinConfidence,
		"collaborative_reason": t.CollaborativeReason,
		"content_reason":       t.ContentReason,
		"popularity_reason":    t.PopularityReason,
		"business_reason":      t.BusinessReason,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("recommend.thresholds.%s must be within [0, 1], got %v", name, v)
		}
	}
	return nil
}

func validateSeasonalRules(rules []SeasonalRule) error {
	for i := range rules {
		r := &rules[i]
		if strings.TrimSpace(r.Season) == "" && len(r.Months) == 0 {
			return fmt.Errorf("recommend.seasonal[%d]: season or months required", i)
		}
		for _, m := range r.Months {
			if m < 1 || m > 12 {
				return fmt.Errorf("recommend.seasonal[%d]: invalid month %d", i, m)
			}
		}
		if len(r.Categories) == 0 {
			return fmt.Errorf("recommend.seasonal[%d]: at least one category required", i)
		}
		if r.Bonus < 0 || r.Bonus > 1 {
			return fmt.Errorf("recommend.seasonal[%d]: bonus must be within [0, 1], got %v", i, r.Bonus)
		}
	}
	return nil
}

// validateDatabase validates database configuration
func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

// validateServer validates the ops server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("OPS_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
