// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
)

// Popularity scores a candidate by its share of units sold in a trailing
// window of completed orders:
//
//	score(i) = units(i) / units(all)
//
// Cold items score 0; they are never penalized below zero.
type Popularity struct {
	baseScorer

	window time.Duration
}

// PopularityConfig contains configuration for the popularity scorer.
type PopularityConfig struct {
	// Window is the trailing sales window.
	// Default: 90 days.
	Window time.Duration
}

// NewPopularity creates a popularity scorer.
func NewPopularity(cfg PopularityConfig) *Popularity {
	if cfg.Window <= 0 {
		cfg.Window = 90 * 24 * time.Hour
	}
	return &Popularity{
		baseScorer: baseScorer{name: NamePopularity},
		window:     cfg.Window,
	}
}

// Score implements Scorer.
//
//nolint:gocritic // rangeValCopy: OrderLine is small
func (p *Popularity) Score(ctx context.Context, in *Input, candidates []*models.Product) (map[string]float64, error) {
	scores := make(map[string]float64, len(candidates))
	since := in.Now.Add(-p.window)

	units := make(map[string]int)
	total := 0
	for _, line := range in.RecentOrders {
		if !line.Completed() || line.Quantity <= 0 || line.OrderedAt.Before(since) {
			continue
		}
		units[line.ProductID] += line.Quantity
		total += line.Quantity
	}

	if total == 0 {
		return scores, nil
	}

	for _, c := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if n := units[c.ID]; n > 0 {
			scores[c.ID] = Clamp01(float64(n) / float64(total))
		}
	}

	return scores, nil
}
