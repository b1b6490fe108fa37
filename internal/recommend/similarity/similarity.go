// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

// Package similarity implements the pure product-product and
// customer-customer similarity functions used by the sub-scorers.
//
// Product similarity is a weighted sum of attribute matches:
//
//	sim(a, b) = 0.4 * [category_a == category_b] +
//	            0.2 * min(price_a, price_b) / max(price_a, price_b) +
//	            0.2 * [audience_a == audience_b] +
//	            0.2 * jaccard(features_a, features_b)
//
// capped at 1.0. Every term is symmetric, so sim(a, b) == sim(b, a).
//
// Customer similarity is the Jaccard coefficient of purchased-product sets.
// Neighbours below MinCustomerSimilarity are discarded and the remainder is
// truncated to MaxNeighbors.
package similarity

import (
	"sort"
	"strings"

	"github.com/tomtom215/storefront-recs/internal/models"
)

const (
	// CategoryWeight is awarded when both products share a category.
	CategoryWeight = 0.4
	// PriceWeight scales the min/max price ratio.
	PriceWeight = 0.2
	// AudienceWeight is awarded when both products target the same audience.
	AudienceWeight = 0.2
	// FeatureWeight scales the feature-set Jaccard overlap.
	FeatureWeight = 0.2

	// MinCustomerSimilarity is the neighbour cut-off.
	MinCustomerSimilarity = 0.1
	// MaxNeighbors caps the number of similar customers returned.
	MaxNeighbors = 10
)

// Product returns the similarity of two products in [0, 1].
// Missing attributes contribute nothing rather than failing.
func Product(a, b *models.Product) float64 {
	if a == nil || b == nil {
		return 0
	}

	var score float64

	if a.Category != "" && strings.EqualFold(a.Category, b.Category) {
		score += CategoryWeight
	}

	score += PriceWeight * priceCloseness(a.Price, b.Price)

	if a.TargetAudience != "" && a.TargetAudience == b.TargetAudience {
		score += AudienceWeight
	}

	score += FeatureWeight * JaccardSets(a.FeatureSet(), b.FeatureSet())

	if score > 1 {
		score = 1
	}
	return score
}

// priceCloseness returns min/max of two prices, or 0 when either is unusable.
func priceCloseness(p1, p2 float64) float64 {
	if p1 <= 0 || p2 <= 0 {
		return 0
	}
	if p1 < p2 {
		return p1 / p2
	}
	return p2 / p1
}

// JaccardSets computes |A∩B| / |A∪B|. Two empty sets have similarity 0.
func JaccardSets(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Neighbor is a customer similar to the target customer.
type Neighbor struct {
	CustomerID string  `json:"customer_id"`
	Similarity float64 `json:"similarity"`

	// CommonProducts is |A∩B|.
	CommonProducts int `json:"common_product_count"`

	// TotalProducts is |A∪B|.
	TotalProducts int `json:"total_product_count"`
}

// PurchaseSets groups completed order lines into per-customer product sets.
// Lines without a customer or product id are skipped.
//
//nolint:gocritic // rangeValCopy: OrderLine is small
func PurchaseSets(lines []models.OrderLine) map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{})
	for _, line := range lines {
		if !line.Completed() || line.CustomerID == "" || line.ProductID == "" {
			continue
		}
		set, ok := sets[line.CustomerID]
		if !ok {
			set = make(map[string]struct{})
			sets[line.CustomerID] = set
		}
		set[line.ProductID] = struct{}{}
	}
	return sets
}

// NeighborOptions bounds the customer neighbourhood. Zero values fall back to
// MinCustomerSimilarity and MaxNeighbors.
type NeighborOptions struct {
	MinSimilarity float64
	K             int
}

func (o NeighborOptions) withDefaults() NeighborOptions {
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = MinCustomerSimilarity
	}
	if o.K <= 0 {
		o.K = MaxNeighbors
	}
	return o
}

// Customers compares the target purchase set against every other customer and
// returns the neighbours with similarity >= opts.MinSimilarity, sorted by
// similarity descending (customer id ascending on ties) and capped at opts.K.
func Customers(targetID string, target map[string]struct{}, others map[string]map[string]struct{}, opts NeighborOptions) []Neighbor {
	if len(target) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	neighbors := make([]Neighbor, 0, len(others))
	for customerID, products := range others {
		if customerID == targetID || len(products) == 0 {
			continue
		}

		common := 0
		for id := range target {
			if _, ok := products[id]; ok {
				common++
			}
		}
		if common == 0 {
			continue
		}

		total := len(target) + len(products) - common
		sim := float64(common) / float64(total)
		if sim < opts.MinSimilarity {
			continue
		}

		neighbors = append(neighbors, Neighbor{
			CustomerID:     customerID,
			Similarity:     sim,
			CommonProducts: common,
			TotalProducts:  total,
		})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].CustomerID < neighbors[j].CustomerID
	})

	if len(neighbors) > opts.K {
		neighbors = neighbors[:opts.K]
	}
	return neighbors
}
