// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"sort"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
	"github.com/tomtom215/storefront-recs/internal/recommend/algorithms"
)

// ScoreTable holds sub-scores keyed by scorer name, then product id.
type ScoreTable map[string]map[string]float64

// Blend combines sub-scores into ranked candidates:
//
//	final = w_c*collaborative + w_t*content + w_p*popularity + w_b*business
//
// Candidates below Thresholds.MinConfidence are dropped. The rest are sorted
// by score descending with ties broken by product id, then capped to
// Limits.MaxResults. The pool must already exclude cart items.
func Blend(cfg *Config, pool []*models.Product, scores ScoreTable, now time.Time) []Candidate {
	w := cfg.Weights
	out := make([]Candidate, 0, len(pool))

	for _, p := range pool {
		c := Candidate{
			Product:            *p,
			CollaborativeScore: scores[algorithms.NameCollaborative][p.ID],
			ContentScore:       scores[algorithms.NameContent][p.ID],
			PopularityScore:    scores[algorithms.NamePopularity][p.ID],
			BusinessScore:      scores[algorithms.NameBusiness][p.ID],
			Timestamp:          now,
		}

		c.BlendedScore = algorithms.Clamp01(w.Collaborative*c.CollaborativeScore +
			w.Content*c.ContentScore +
			w.Popularity*c.PopularityScore +
			w.Business*c.BusinessScore)

		if c.BlendedScore < cfg.Thresholds.MinConfidence {
			continue
		}

		c.Confidence = c.BlendedScore
		c.Reasons, c.Type = explain(&cfg.Thresholds, &c)
		out = append(out, c)
	}

	sortCandidates(out)

	if len(out) > cfg.Limits.MaxResults {
		out = out[:cfg.Limits.MaxResults]
	}
	return out
}

// explain derives reasons in priority order; the type is the first match.
func explain(th *ThresholdConfig, c *Candidate) ([]string, RecommendationType) {
	var (
		reasons []string
		typ     RecommendationType
	)

	add := func(ok bool, reason string, t RecommendationType) {
		if !ok {
			return
		}
		reasons = append(reasons, reason)
		if typ == "" {
			typ = t
		}
	}

	add(c.CollaborativeScore > th.CollaborativeReason, ReasonSimilarCustomers, TypeCollaborative)
	add(c.ContentScore > th.ContentReason, ReasonComplements, TypeContentBased)
	add(c.PopularityScore > th.PopularityReason, ReasonTrending, TypeTrending)
	add(c.BusinessScore > th.BusinessReason, ReasonFitsProfile, TypeBusinessRules)

	if len(reasons) == 0 {
		return []string{ReasonGeneral}, TypeGeneral
	}
	return reasons, typ
}

// sortCandidates orders by blended score descending, then product id.
func sortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].BlendedScore != cs[j].BlendedScore {
			return cs[i].BlendedScore > cs[j].BlendedScore
		}
		return cs[i].Product.ID < cs[j].Product.ID
	})
}

// candidatePool returns catalog products that are not in the cart.
func candidatePool(catalog []models.Product, cart map[string]struct{}) []*models.Product {
	pool := make([]*models.Product, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]
		if _, inCart := cart[p.ID]; inCart {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}
