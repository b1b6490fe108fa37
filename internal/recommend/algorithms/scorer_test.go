// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func productIndex(products ...*models.Product) map[string]*models.Product {
	idx := make(map[string]*models.Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

func TestClamp01(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScorerNames(t *testing.T) {
	t.Parallel()

	scorers := []struct {
		scorer Scorer
		want   string
	}{
		{NewCollaborative(), NameCollaborative},
		{NewContent(ContentConfig{}), NameContent},
		{NewPopularity(PopularityConfig{}), NamePopularity},
		{NewBusinessRules(DefaultBusinessRulesConfig(), nil), NameBusiness},
	}

	for _, s := range scorers {
		if got := s.scorer.Name(); got != s.want {
			t.Errorf("Name() = %q, want %q", got, s.want)
		}
	}
}

func TestScorers_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &models.Product{ID: "p1", Category: "tools", Price: 10, InStock: true}
	in := &Input{
		CustomerType: models.CustomerB2C,
		CartProducts: []*models.Product{{ID: "cart", Category: "tools", Price: 10}},
		RecentOrders: []models.OrderLine{
			{CustomerID: "c1", ProductID: "p1", Quantity: 1, OrderedAt: testNow, Status: models.OrderCompleted},
		},
		Now: testNow,
	}

	scorers := []Scorer{
		NewContent(ContentConfig{}),
		NewPopularity(PopularityConfig{}),
		NewBusinessRules(DefaultBusinessRulesConfig(), nil),
	}
	for _, s := range scorers {
		if _, err := s.Score(ctx, in, []*models.Product{p}); err == nil {
			t.Errorf("%s: Score() with canceled context should return error", s.Name())
		}
	}
}
