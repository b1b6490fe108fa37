// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/recommend/algorithms"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("weights match the standard blend", func(t *testing.T) {
		want := ScorerWeights{Collaborative: 0.4, Content: 0.3, Popularity: 0.2, Business: 0.1}
		if cfg.Weights != want {
			t.Errorf("Weights = %+v, want %+v", cfg.Weights, want)
		}
		if sum := cfg.Weights.Sum(); sum < 0.999 || sum > 1.001 {
			t.Errorf("weights sum = %f, want 1.0", sum)
		}
	})

	t.Run("thresholds", func(t *testing.T) {
		if cfg.Thresholds.MinConfidence != 0.3 {
			t.Errorf("MinConfidence = %f, want 0.3", cfg.Thresholds.MinConfidence)
		}
		if cfg.Thresholds.PopularityReason != 0.3 {
			t.Errorf("PopularityReason = %f, want 0.3", cfg.Thresholds.PopularityReason)
		}
	})

	t.Run("limits and cache", func(t *testing.T) {
		if cfg.Limits.MaxResults != 6 {
			t.Errorf("MaxResults = %d, want 6", cfg.Limits.MaxResults)
		}
		if cfg.Limits.FallbackResults != 3 {
			t.Errorf("FallbackResults = %d, want 3", cfg.Limits.FallbackResults)
		}
		if cfg.Cache.TTL != 30*time.Minute {
			t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
		}
		if cfg.Cache.MaxEntries != 1000 {
			t.Errorf("Cache.MaxEntries = %d, want 1000", cfg.Cache.MaxEntries)
		}
	})

	t.Run("neighbourhood", func(t *testing.T) {
		if cfg.Neighbors.MinSimilarity != 0.1 || cfg.Neighbors.K != 10 {
			t.Errorf("Neighbors = %+v, want {0.1 10}", cfg.Neighbors)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:      "negative weight",
			modify:    func(c *Config) { c.Weights.Content = -0.1 },
			wantError: "non-negative",
		},
		{
			name:      "zero weights",
			modify:    func(c *Config) { c.Weights = ScorerWeights{} },
			wantError: "all be zero",
		},
		{
			name:      "weights above one",
			modify:    func(c *Config) { c.Weights.Business = 0.5 },
			wantError: "at most 1",
		},
		{
			name:      "min confidence above one",
			modify:    func(c *Config) { c.Thresholds.MinConfidence = 1.5 },
			wantError: "thresholds.min_confidence",
		},
		{
			name:      "zero max results",
			modify:    func(c *Config) { c.Limits.MaxResults = 0 },
			wantError: "limits.max_results",
		},
		{
			name:      "negative fetch timeout",
			modify:    func(c *Config) { c.Limits.FetchTimeout = -time.Second },
			wantError: "limits.fetch_timeout",
		},
		{
			name:      "zero ttl",
			modify:    func(c *Config) { c.Cache.TTL = 0 },
			wantError: "cache.ttl",
		},
		{
			name: "zero ttl with cache disabled",
			modify: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
		{
			name:      "zero max entries",
			modify:    func(c *Config) { c.Cache.MaxEntries = 0 },
			wantError: "cache.max_entries",
		},
		{
			name:      "zero neighbours",
			modify:    func(c *Config) { c.Neighbors.K = 0 },
			wantError: "neighbors.k",
		},
		{
			name: "invalid month",
			modify: func(c *Config) {
				c.SeasonalRules = []algorithms.SeasonRule{{Months: []time.Month{13}, Categories: []string{"toys"}}}
			},
			wantError: "invalid month",
		},
		{
			name: "rule without period",
			modify: func(c *Config) {
				c.SeasonalRules = []algorithms.SeasonRule{{Categories: []string{"toys"}}}
			},
			wantError: "season or months",
		},
		{
			name:      "breaker without failures",
			modify:    func(c *Config) { c.Breaker.MaxFailures = 0 },
			wantError: "breaker.max_failures",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Weights.Collaborative = 0
	clone.SeasonalRules[0].Categories[0] = "changed"

	if cfg.Weights.Collaborative != 0.4 {
		t.Error("modifying clone weights affected original")
	}
	if cfg.SeasonalRules[0].Categories[0] == "changed" {
		t.Error("modifying clone seasonal rules affected original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	cache, ok := decoded["cache"].(map[string]any)
	if !ok {
		t.Fatalf("cache section missing: %s", data)
	}
	if cache["ttl"] != "30m0s" {
		t.Errorf("cache.ttl = %v, want 30m0s", cache["ttl"])
	}
}
