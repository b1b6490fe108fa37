// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"
	"math"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
	"github.com/tomtom215/storefront-recs/internal/recommend/similarity"
)

// Content scores a candidate by its single strongest match against the cart
// and the customer's purchase history:
//
//	score(i) = max( max_{c in cart} sim(i, c),
//	                max_{h in history} sim(i, h) * exp(-days_since(h) / tau) )
//
// The max (rather than an average) makes one strong complement dominate.
// With tau = 30 days a purchase older than ~90 days contributes under 5%.
type Content struct {
	baseScorer

	recencyDays float64
}

// ContentConfig contains configuration for the content scorer.
type ContentConfig struct {
	// RecencyDays is the decay constant tau in days.
	// Default: 30.
	RecencyDays float64
}

// NewContent creates a content scorer.
func NewContent(cfg ContentConfig) *Content {
	if cfg.RecencyDays <= 0 {
		cfg.RecencyDays = 30
	}
	return &Content{
		baseScorer:  baseScorer{name: NameContent},
		recencyDays: cfg.RecencyDays,
	}
}

// RecencyWeight returns exp(-age_days / tau). Future timestamps weigh 1.
func (c *Content) RecencyWeight(purchasedAt, now time.Time) float64 {
	days := now.Sub(purchasedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-days / c.recencyDays)
}

// Score implements Scorer.
//
//nolint:gocritic // rangeValCopy: OrderLine is small
func (c *Content) Score(ctx context.Context, in *Input, candidates []*models.Product) (map[string]float64, error) {
	scores := make(map[string]float64, len(candidates))
	if len(in.CartProducts) == 0 && len(in.History) == 0 {
		return scores, nil
	}

	for _, p := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		var best float64
		for _, item := range in.CartProducts {
			if item.ID == p.ID {
				continue
			}
			if s := similarity.Product(p, item); s > best {
				best = s
			}
		}

		for _, line := range in.History {
			if line.ProductID == p.ID {
				continue
			}
			bought, ok := in.Products[line.ProductID]
			if !ok {
				continue
			}
			s := similarity.Product(p, bought) * c.RecencyWeight(line.OrderedAt, in.Now)
			if s > best {
				best = s
			}
		}

		if best > 0 {
			scores[p.ID] = Clamp01(best)
		}
	}

	return scores, nil
}
