// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
	"github.com/tomtom215/storefront-recs/internal/recommend/similarity"
)

// Scorer names. These are also the keys of the score breakdown.
const (
	NameCollaborative = "collaborative"
	NameContent       = "content"
	NamePopularity    = "popularity"
	NameBusiness      = "business"
)

// Scorer scores candidate products for a single request.
type Scorer interface {
	// Name returns the scorer identifier (e.g. "content").
	Name() string

	// Score returns a score in [0, 1] keyed by product id. Candidates absent
	// from the returned map are treated as 0.
	Score(ctx context.Context, in *Input, candidates []*models.Product) (map[string]float64, error)
}

// Input is the read-only snapshot every scorer consumes.
type Input struct {
	// CustomerID is empty for anonymous visitors.
	CustomerID   string
	CustomerType models.CustomerType

	// CartProducts are the cart lines resolved against the catalog.
	CartProducts []*models.Product

	// History holds the customer's completed order lines.
	History []models.OrderLine

	// RecentOrders holds every completed order line in the fetched window.
	RecentOrders []models.OrderLine

	// PurchaseSets maps customer id to the products they bought in RecentOrders.
	PurchaseSets map[string]map[string]struct{}

	// Neighbors are the customers most similar to CustomerID.
	Neighbors []similarity.Neighbor

	// Products indexes the catalog snapshot by id.
	Products map[string]*models.Product

	// Now is the evaluation instant. Scorers never call time.Now directly.
	Now time.Time

	// Month and Season drive the seasonal business rule.
	Month  time.Month
	Season string
}

// baseScorer provides the name shared by all scorers.
type baseScorer struct {
	name string
}

// Name returns the scorer identifier.
func (b *baseScorer) Name() string {
	return b.name
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

var (
	_ Scorer = (*Collaborative)(nil)
	_ Scorer = (*Content)(nil)
	_ Scorer = (*Popularity)(nil)
	_ Scorer = (*BusinessRules)(nil)
)
