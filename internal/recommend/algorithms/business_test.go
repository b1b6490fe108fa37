// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package algorithms

import (
	"context"
	"testing"

	"github.com/tomtom215/storefront-recs/internal/models"
)

func TestBusinessRules_ScoreProduct(t *testing.T) {
	t.Parallel()

	rules := NewBusinessRules(DefaultBusinessRulesConfig(), NewSeasonTable(DefaultSeasonRules()))
	in := &Input{
		CustomerType: models.CustomerB2C,
		Now:          testNow,
		Month:        testNow.Month(),
		Season:       SeasonForMonth(testNow.Month()),
	}

	tests := []struct {
		name    string
		product models.Product
		want    float64
	}{
		{
			name:    "audience match in stock mid price",
			product: models.Product{ID: "p", Category: "books", Price: 100, TargetAudience: models.AudienceBoth, InStock: true},
			want:    0.5,
		},
		{
			name:    "out of stock clamps to zero",
			product: models.Product{ID: "p", Category: "books", Price: 100, TargetAudience: models.AudienceBoth},
			want:    0,
		},
		{
			name:    "premium price",
			product: models.Product{ID: "p", Category: "books", Price: 250, TargetAudience: models.AudienceB2C, InStock: true},
			want:    0.7,
		},
		{
			name:    "entry price",
			product: models.Product{ID: "p", Category: "books", Price: 20, TargetAudience: models.AudienceBoth, InStock: true},
			want:    0.6,
		},
		{
			name:    "audience mismatch",
			product: models.Product{ID: "p", Category: "books", Price: 100, TargetAudience: models.AudienceB2B, InStock: true},
			want:    0,
		},
		{
			name:    "seasonal category",
			product: models.Product{ID: "p", Category: "Outdoor", Price: 100, TargetAudience: models.AudienceBoth, InStock: true},
			want:    0.6,
		},
		{
			name:    "new arrival",
			product: models.Product{ID: "p", Category: "books", Price: 100, TargetAudience: models.AudienceBoth, InStock: true, CreatedAt: testNow.AddDate(0, 0, -10)},
			want:    0.65,
		},
		{
			name:    "old product earns no novelty",
			product: models.Product{ID: "p", Category: "books", Price: 100, TargetAudience: models.AudienceBoth, InStock: true, CreatedAt: testNow.AddDate(0, 0, -31)},
			want:    0.5,
		},
		{
			name:    "every bonus",
			product: models.Product{ID: "p", Category: "garden", Price: 300, TargetAudience: models.AudienceBoth, InStock: true, CreatedAt: testNow.AddDate(0, 0, -1)},
			want:    0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := tt.product
			if got := rules.ScoreProduct(in, &p); !approxEqual(got, tt.want) {
				t.Errorf("ScoreProduct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBusinessRules_OutOfStockRanksLower(t *testing.T) {
	t.Parallel()

	rules := NewBusinessRules(DefaultBusinessRulesConfig(), nil)
	in := &Input{CustomerType: models.CustomerB2B, Now: testNow}

	inStock := &models.Product{ID: "a", Category: "office", Price: 300, TargetAudience: models.AudienceB2B, InStock: true}
	outOfStock := &models.Product{ID: "b", Category: "office", Price: 300, TargetAudience: models.AudienceB2B}

	scores, err := rules.Score(context.Background(), in, []*models.Product{inStock, outOfStock})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	// 0.3 + 0.2 + 0.2 = 0.7 in stock; 0.3 - 0.5 + 0.2 = 0 out of stock.
	if got := scores["a"]; !approxEqual(got, 0.7) {
		t.Errorf("score[a] = %v, want 0.7", got)
	}
	if got := scores["b"]; got != 0 {
		t.Errorf("score[b] = %v, want 0", got)
	}
}

func TestBusinessRules_NilPolicy(t *testing.T) {
	t.Parallel()

	rules := NewBusinessRules(DefaultBusinessRulesConfig(), nil)
	in := &Input{CustomerType: models.CustomerB2C, Now: testNow, Month: testNow.Month(), Season: SeasonSummer}
	p := &models.Product{ID: "p", Category: "outdoor", Price: 100, TargetAudience: models.AudienceBoth, InStock: true}

	if got := rules.ScoreProduct(in, p); !approxEqual(got, 0.5) {
		t.Errorf("ScoreProduct() = %v, want 0.5", got)
	}
}
