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

// BusinessRules scores a candidate with additive merchandising heuristics
// starting from zero:
//
//	audience match +0.3, mismatch -0.2
//	in stock +0.2, out of stock -0.5
//	price > 200 +0.2, price < 50 +0.1
//	in season +0.1 (per SeasonalPolicy)
//	created within the novelty window +0.15
//
// The sum is clamped to [0, 1], so out-of-stock items usually land at 0.
type BusinessRules struct {
	baseScorer

	cfg    BusinessRulesConfig
	policy SeasonalPolicy
}

// BusinessRulesConfig contains the rule weights.
type BusinessRulesConfig struct {
	AudienceMatchBonus      float64
	AudienceMismatchPenalty float64
	InStockBonus            float64
	OutOfStockPenalty       float64

	// PremiumPrice and EntryPrice bound the price-tier bonuses.
	PremiumPrice float64
	PremiumBonus float64
	EntryPrice   float64
	EntryBonus   float64

	// NoveltyWindow is how long a new product earns NoveltyBonus.
	NoveltyWindow time.Duration
	NoveltyBonus  float64
}

// DefaultBusinessRulesConfig returns the standard rule weights.
func DefaultBusinessRulesConfig() BusinessRulesConfig {
	return BusinessRulesConfig{
		AudienceMatchBonus:      0.3,
		AudienceMismatchPenalty: 0.2,
		InStockBonus:            0.2,
		OutOfStockPenalty:       0.5,
		PremiumPrice:            200,
		PremiumBonus:            0.2,
		EntryPrice:              50,
		EntryBonus:              0.1,
		NoveltyWindow:           30 * 24 * time.Hour,
		NoveltyBonus:            0.15,
	}
}

// NewBusinessRules creates a business-rule scorer. A nil policy disables the
// seasonal bonus.
func NewBusinessRules(cfg BusinessRulesConfig, policy SeasonalPolicy) *BusinessRules {
	return &BusinessRules{
		baseScorer: baseScorer{name: NameBusiness},
		cfg:        cfg,
		policy:     policy,
	}
}

// Score implements Scorer.
func (b *BusinessRules) Score(ctx context.Context, in *Input, candidates []*models.Product) (map[string]float64, error) {
	scores := make(map[string]float64, len(candidates))
	for _, p := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if s := b.ScoreProduct(in, p); s > 0 {
			scores[p.ID] = s
		}
	}
	return scores, nil
}

// ScoreProduct returns the clamped business score for a single product.
func (b *BusinessRules) ScoreProduct(in *Input, p *models.Product) float64 {
	var score float64

	if p.TargetAudience.Matches(in.CustomerType) {
		score += b.cfg.AudienceMatchBonus
	} else {
		score -= b.cfg.AudienceMismatchPenalty
	}

	if p.InStock {
		score += b.cfg.InStockBonus
	} else {
		score -= b.cfg.OutOfStockPenalty
	}

	switch {
	case p.Price > b.cfg.PremiumPrice:
		score += b.cfg.PremiumBonus
	case p.Price < b.cfg.EntryPrice:
		score += b.cfg.EntryBonus
	}

	if b.policy != nil {
		score += b.policy.Bonus(p.Category, in.Month, in.Season)
	}

	if !p.CreatedAt.IsZero() && b.cfg.NoveltyWindow > 0 {
		age := in.Now.Sub(p.CreatedAt)
		if age >= 0 && age <= b.cfg.NoveltyWindow {
			score += b.cfg.NoveltyBonus
		}
	}

	return Clamp01(score)
}
