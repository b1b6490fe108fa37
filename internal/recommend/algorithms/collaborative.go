// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"

	"github.com/tomtom215/storefront-recs/internal/models"
)

// Collaborative scores a candidate by how strongly the customer's neighbours
// bought it:
//
//	score(i) = sum_{v in N, v bought i} sim(u, v) / sum_{v in N} sim(u, v)
//
// where N is the top-K neighbourhood computed by the similarity package.
// Anonymous customers and customers without neighbours score 0 everywhere.
type Collaborative struct {
	baseScorer
}

// NewCollaborative creates the collaborative scorer.
func NewCollaborative() *Collaborative {
	return &Collaborative{baseScorer: baseScorer{name: NameCollaborative}}
}

// Score implements Scorer.
func (c *Collaborative) Score(ctx context.Context, in *Input, candidates []*models.Product) (map[string]float64, error) {
	scores := make(map[string]float64, len(candidates))
	if len(in.Neighbors) == 0 {
		return scores, nil
	}

	var denominator float64
	for _, n := range in.Neighbors {
		denominator += n.Similarity
	}
	if denominator <= 0 {
		return scores, nil
	}

	for _, p := range candidates {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		var numerator float64
		for _, n := range in.Neighbors {
			if _, bought := in.PurchaseSets[n.CustomerID][p.ID]; bought {
				numerator += n.Similarity
			}
		}
		if numerator > 0 {
			scores[p.ID] = Clamp01(numerator / denominator)
		}
	}

	return scores, nil
}
