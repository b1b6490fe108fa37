// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the contribution of each sub-scorer to the blended score.
	Weights ScorerWeights `json:"weights"`

	// Thresholds controls the confidence cut-off and reason labelling.
	Thresholds ThresholdConfig `json:"thresholds"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`

	// Windows controls how much order history the scorers see.
	Windows WindowConfig `json:"windows"`

	// Neighbors controls the customer-similarity neighbourhood.
	Neighbors NeighborConfig `json:"neighbors"`

	// Business contains the business-rule weights.
	Business algorithms.BusinessRulesConfig `json:"business"`

	// SeasonalRules is the seasonal merchandising table.
	SeasonalRules []algorithms.SeasonRule `json:"seasonal_rules"`

	// Breaker configures the collaborator circuit breakers.
	Breaker BreakerConfig `json:"breaker"`
}

// ScorerWeights defines the linear blend of sub-scores. The weights are used
// as-is (not normalized) so the blended score stays in [0, 1] only when they
// sum to at most 1.
type ScorerWeights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
	Popularity    float64 `json:"popularity"`
	Business      float64 `json:"business"`
}

// Sum returns the total weight.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScorerWeights) Sum() float64 {
	return w.Collaborative + w.Content + w.Popularity + w.Business
}

// ToMap returns the weights keyed by scorer name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScorerWeights) ToMap() map[string]float64 {
	return map[string]float64{
		algorithms.NameCollaborative: w.Collaborative,
		algorithms.NameContent:       w.Content,
		algorithms.NamePopularity:    w.Popularity,
		algorithms.NameBusiness:      w.Business,
	}
}

// ThresholdConfig contains the confidence cut-off and the per-scorer
// thresholds that decide which reasons a candidate carries.
type ThresholdConfig struct {
	// MinConfidence drops candidates whose blended score is below it.
	// Default: 0.3.
	MinConfidence float64 `json:"min_confidence"`

	// Reason thresholds. A sub-score strictly above its threshold earns the
	// matching reason. Defaults: 0.5, 0.5, 0.3, 0.5.
	CollaborativeReason float64 `json:"collaborative_reason"`
	ContentReason       float64 `json:"content_reason"`
	PopularityReason    float64 `json:"popularity_reason"`
	BusinessReason      float64 `json:"business_reason"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxResults caps the ranked output.
	// Default: 6.
	MaxResults int `json:"max_results"`

	// FallbackResults caps the degraded output.
	// Default: 3.
	FallbackResults int `json:"fallback_results"`

	// FallbackConfidence is attached to every fallback candidate.
	// Default: 0.5.
	FallbackConfidence float64 `json:"fallback_confidence"`

	// FetchTimeout bounds each collaborator call. Zero disables the deadline.
	// Default: 2s.
	FetchTimeout time.Duration `json:"fetch_timeout"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns the recommendation cache on.
	Enabled bool `json:"enabled"`

	// TTL is how long a computed ranking is served from cache.
	// Default: 30m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries triggers a purge of expired entries when exceeded.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// WindowConfig controls the order-history windows.
type WindowConfig struct {
	// Popularity is the trailing sales window for the popularity scorer and
	// for customer-similarity purchase sets.
	// Default: 90 days.
	Popularity time.Duration `json:"popularity"`

	// RecencyDays is the decay constant of the content scorer.
	// Default: 30.
	RecencyDays float64 `json:"recency_days"`
}

// NeighborConfig controls the customer-similarity neighbourhood.
type NeighborConfig struct {
	// MinSimilarity discards weaker neighbours.
	// Default: 0.1.
	MinSimilarity float64 `json:"min_similarity"`

	// K caps the neighbourhood size.
	// Default: 10.
	K int `json:"k"`
}

// BreakerConfig configures the collaborator circuit breakers.
type BreakerConfig struct {
	// Enabled wraps the collaborators in circuit breakers.
	Enabled bool `json:"enabled"`

	// MaxFailures is the number of consecutive failures that opens a breaker.
	// Default: 5.
	MaxFailures uint32 `json:"max_failures"`

	// OpenTimeout is how long an open breaker rejects calls before probing.
	// Default: 30s.
	OpenTimeout time.Duration `json:"open_timeout"`
}

// DefaultConfig returns a configuration with the standard ranking constants.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScorerWeights{
			Collaborative: 0.4,
			Content:       0.3,
			Popularity:    0.2,
			Business:      0.1,
		},
		Thresholds: ThresholdConfig{
			MinConfidence:       0.3,
			CollaborativeReason: 0.5,
			ContentReason:       0.5,
			PopularityReason:    0.3,
			BusinessReason:      0.5,
		},
		Limits: LimitsConfig{
			MaxResults:         6,
			FallbackResults:    3,
			FallbackConfidence: 0.5,
			FetchTimeout:       2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        30 * time.Minute,
			MaxEntries: 1000,
		},
		Windows: WindowConfig{
			Popularity:  90 * 24 * time.Hour,
			RecencyDays: 30,
		},
		Neighbors: NeighborConfig{
			MinSimilarity: 0.1,
			K:             10,
		},
		Business:      algorithms.DefaultBusinessRulesConfig(),
		SeasonalRules: algorithms.DefaultSeasonRules(),
		Breaker: BreakerConfig{
			Enabled:     true,
			MaxFailures: 5,
			OpenTimeout: 30 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	w := c.Weights
	if w.Collaborative < 0 || w.Content < 0 || w.Popularity < 0 || w.Business < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	if w.Sum() > 1+1e-9 {
		return fmt.Errorf("weights must sum to at most 1, got %f", w.Sum())
	}

	for name, v := range map[string]float64{
		"thresholds.min_confidence":       c.Thresholds.MinConfidence,
		"thresholds.collaborative_reason": c.Thresholds.CollaborativeReason,
		"thresholds.content_reason":       c.Thresholds.ContentReason,
		"thresholds.popularity_reason":    c.Thresholds.PopularityReason,
		"thresholds.business_reason":      c.Thresholds.BusinessReason,
		"limits.fallback_confidence":      c.Limits.FallbackConfidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, v)
		}
	}

	if c.Limits.MaxResults < 1 {
		return fmt.Errorf("limits.max_results must be positive, got %d", c.Limits.MaxResults)
	}
	if c.Limits.FallbackResults < 0 {
		return fmt.Errorf("limits.fallback_results must be non-negative, got %d", c.Limits.FallbackResults)
	}
	if c.Limits.FetchTimeout < 0 {
		return fmt.Errorf("limits.fetch_timeout must be non-negative, got %v", c.Limits.FetchTimeout)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if c.Windows.Popularity <= 0 {
		return fmt.Errorf("windows.popularity must be positive, got %v", c.Windows.Popularity)
	}
	if c.Windows.RecencyDays <= 0 {
		return fmt.Errorf("windows.recency_days must be positive, got %f", c.Windows.RecencyDays)
	}

	if c.Neighbors.MinSimilarity < 0 || c.Neighbors.MinSimilarity > 1 {
		return fmt.Errorf("neighbors.min_similarity must be in [0, 1], got %f", c.Neighbors.MinSimilarity)
	}
	if c.Neighbors.K < 1 {
		return fmt.Errorf("neighbors.k must be positive, got %d", c.Neighbors.K)
	}

	for i, rule := range c.SeasonalRules {
		for _, m := range rule.Months {
			if m < time.January || m > time.December {
				return fmt.Errorf("seasonal_rules[%d]: invalid month %d", i, m)
			}
		}
		if rule.Season == "" && len(rule.Months) == 0 {
			return fmt.Errorf("seasonal_rules[%d]: season or months required", i)
		}
		if rule.Bonus < 0 || rule.Bonus > 1 {
			return fmt.Errorf("seasonal_rules[%d]: bonus must be in [0, 1], got %f", i, rule.Bonus)
		}
	}

	if c.Breaker.Enabled {
		if c.Breaker.MaxFailures < 1 {
			return fmt.Errorf("breaker.max_failures must be positive, got %d", c.Breaker.MaxFailures)
		}
		if c.Breaker.OpenTimeout <= 0 {
			return fmt.Errorf("breaker.open_timeout must be positive, got %v", c.Breaker.OpenTimeout)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.SeasonalRules = make([]algorithms.SeasonRule, len(c.SeasonalRules))
	for i, r := range c.SeasonalRules {
		r.Months = append([]time.Month(nil), r.Months...)
		r.Categories = append([]string(nil), r.Categories...)
		clone.SeasonalRules[i] = r
	}
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type limits struct {
		MaxResults         int     `json:"max_results"`
		FallbackResults    int     `json:"fallback_results"`
		FallbackConfidence float64 `json:"fallback_confidence"`
		FetchTimeout       string  `json:"fetch_timeout"`
	}
	type cache struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	type windows struct {
		Popularity  string  `json:"popularity"`
		RecencyDays float64 `json:"recency_days"`
	}
	return json.Marshal(&struct {
		*Alias
		Limits  limits  `json:"limits"`
		Cache   cache   `json:"cache"`
		Windows windows `json:"windows"`
	}{
		Alias: (*Alias)(c),
		Limits: limits{
			MaxResults:         c.Limits.MaxResults,
			FallbackResults:    c.Limits.FallbackResults,
			FallbackConfidence: c.Limits.FallbackConfidence,
			FetchTimeout:       c.Limits.FetchTimeout.String(),
		},
		Cache: cache{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
		Windows: windows{
			Popularity:  c.Windows.Popularity.String(),
			RecencyDays: c.Windows.RecencyDays,
		},
	})
}
