// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/storefront-recs/internal/config"
	"github.com/tomtom215/storefront-recs/internal/recommend"
	"github.com/tomtom215/storefront-recs/internal/recommend/algorithms"
)

// buildEngineConfig maps the application config onto the engine config.
// Settings the application config does not expose keep the engine defaults.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	out := recommend.DefaultConfig()

	out.Weights = recommend.ScorerWeights{
		Collaborative: cfg.Weights.Collaborative,
		Content:       cfg.Weights.Content,
		Popularity:    cfg.Weights.Popularity,
		Business:      cfg.Weights.Business,
	}
	out.Thresholds = recommend.ThresholdConfig{
		MinConfidence:       cfg.Thresholds.MinConfidence,
		CollaborativeReason: cfg.Thresholds.CollaborativeReason,
		ContentReason:       cfg.Thresholds.ContentReason,
		PopularityReason:    cfg.Thresholds.PopularityReason,
		BusinessReason:      cfg.Thresholds.BusinessReason,
	}

	out.Limits.MaxResults = cfg.MaxResults
	out.Limits.FallbackResults = cfg.FallbackResults
	out.Limits.FetchTimeout = cfg.FetchTimeout

	out.Cache = recommend.CacheConfig{
		Enabled:    cfg.Cache.Enabled,
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
	}
	out.Windows = recommend.WindowConfig{
		Popularity:  cfg.Windows.Popularity,
		RecencyDays: cfg.Windows.RecencyDays,
	}
	out.Neighbors = recommend.NeighborConfig{
		MinSimilarity: cfg.Neighbor.MinSimilarity,
		K:             cfg.Neighbor.K,
	}

	b := cfg.Business
	out.Business = algorithms.BusinessRulesConfig{
		AudienceMatchBonus:      b.AudienceMatchBonus,
		AudienceMismatchPenalty: b.AudienceMismatchPenalty,
		InStockBonus:            b.InStockBonus,
		OutOfStockPenalty:       b.OutOfStockPenalty,
		PremiumPrice:            b.PremiumPrice,
		PremiumBonus:            b.PremiumBonus,
		EntryPrice:              b.EntryPrice,
		EntryBonus:              b.EntryBonus,
		NoveltyWindow:           b.NoveltyWindow,
		NoveltyBonus:            b.NoveltyBonus,
	}

	out.Breaker = recommend.BreakerConfig{
		Enabled:     cfg.Breaker.Enabled,
		MaxFailures: cfg.Breaker.MaxFailures,
		OpenTimeout: cfg.Breaker.OpenTimeout,
	}

	// An empty list keeps the built-in seasonal table.
	if len(cfg.Seasonal) > 0 {
		out.SeasonalRules = make([]algorithms.SeasonRule, 0, len(cfg.Seasonal))
		for _, r := range cfg.Seasonal {
			months := make([]time.Month, 0, len(r.Months))
			for _, m := range r.Months {
				months = append(months, time.Month(m))
			}
			out.SeasonalRules = append(out.SeasonalRules, algorithms.SeasonRule{
				Season:     r.Season,
				Months:     months,
				Categories: append([]string(nil), r.Categories...),
				Bonus:      r.Bonus,
			})
		}
	}

	return out
}

// initEngine builds the recommendation engine over the given collaborators.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.RecommendConfig, catalog recommend.CatalogReader, orders recommend.OrderReader, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)

	engine, err := recommend.NewEngine(engineCfg, catalog, orders, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	logger.Info().
		Float64("weight_collaborative", engineCfg.Weights.Collaborative).
		Float64("weight_content", engineCfg.Weights.Content).
		Float64("weight_popularity", engineCfg.Weights.Popularity).
		Float64("weight_business", engineCfg.Weights.Business).
		Int("max_results", engineCfg.Limits.MaxResults).
		Bool("cache_enabled", engineCfg.Cache.Enabled).
		Dur("cache_ttl", engineCfg.Cache.TTL).
		Bool("breaker_enabled", engineCfg.Breaker.Enabled).
		Int("seasonal_rules", len(engineCfg.SeasonalRules)).
		Msg("recommendation engine initialized")

	return engine, nil
}
