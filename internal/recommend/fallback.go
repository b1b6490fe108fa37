// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"sort"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
)

// Fallback produces the degraded ranking used when the pipeline fails or
// returns nothing. It keeps in-stock products whose audience matches the
// customer type, sorts them by price (descending for B2B, ascending for
// B2C) with ties broken by id, and returns up to Limits.FallbackResults.
// It never fails; an empty catalog yields an empty slice.
func Fallback(cfg *Config, catalog []models.Product, customerType models.CustomerType, exclude map[string]struct{}, now time.Time) []Candidate {
	eligible := make([]*models.Product, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]
		if p.ID == "" || !p.InStock || !p.TargetAudience.Matches(customerType) {
			continue
		}
		if _, excluded := exclude[p.ID]; excluded {
			continue
		}
		eligible = append(eligible, p)
	}

	premiumFirst := customerType == models.CustomerB2B
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Price != b.Price {
			if premiumFirst {
				return a.Price > b.Price
			}
			return a.Price < b.Price
		}
		return a.ID < b.ID
	})

	if len(eligible) > cfg.Limits.FallbackResults {
		eligible = eligible[:cfg.Limits.FallbackResults]
	}

	out := make([]Candidate, 0, len(eligible))
	for _, p := range eligible {
		out = append(out, Candidate{
			Product:      *p,
			BlendedScore: cfg.Limits.FallbackConfidence,
			Reasons:      []string{ReasonGeneral},
			Type:         TypeFallback,
			Confidence:   cfg.Limits.FallbackConfidence,
			Timestamp:    now,
		})
	}
	return out
}
