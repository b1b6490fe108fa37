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

func TestNewContent_Defaults(t *testing.T) {
	t.Parallel()

	c := NewContent(ContentConfig{})
	if c.recencyDays != 30 {
		t.Errorf("recencyDays = %v, want 30", c.recencyDays)
	}

	c = NewContent(ContentConfig{RecencyDays: 7})
	if c.recencyDays != 7 {
		t.Errorf("recencyDays = %v, want 7", c.recencyDays)
	}
}

func TestContent_RecencyWeight(t *testing.T) {
	t.Parallel()

	c := NewContent(ContentConfig{})

	if got := c.RecencyWeight(testNow, testNow); got != 1 {
		t.Errorf("weight(now) = %v, want 1", got)
	}
	if got := c.RecencyWeight(testNow.Add(time.Hour), testNow); got != 1 {
		t.Errorf("weight(future) = %v, want 1", got)
	}
	if got := c.RecencyWeight(testNow.AddDate(0, 0, -30), testNow); !approxEqual(got, math.Exp(-1)) {
		t.Errorf("weight(30d) = %v, want %v", got, math.Exp(-1))
	}
	if got := c.RecencyWeight(testNow.AddDate(0, 0, -90), testNow); got >= 0.05 {
		t.Errorf("weight(90d) = %v, want < 0.05", got)
	}
}

func TestContent_Score(t *testing.T) {
	t.Parallel()

	drill := &models.Product{ID: "drill", Category: "tools", Price: 100, TargetAudience: models.AudienceBoth, Features: []string{"cordless", "18v"}}
	driver := &models.Product{ID: "driver", Category: "tools", Price: 100, TargetAudience: models.AudienceBoth, Features: []string{"cordless", "18v"}}
	hose := &models.Product{ID: "hose", Category: "garden", TargetAudience: models.AudienceB2B}
	saw := &models.Product{ID: "saw", Category: "tools", Price: 100, TargetAudience: models.AudienceBoth, Features: []string{"cordless", "18v"}}

	t.Run("cart match dominates", func(t *testing.T) {
		t.Parallel()
		in := &Input{CartProducts: []*models.Product{drill}, Now: testNow}
		scores, err := NewContent(ContentConfig{}).Score(context.Background(), in, []*models.Product{driver, hose})
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if got := scores["driver"]; !approxEqual(got, 1) {
			t.Errorf("score[driver] = %v, want 1", got)
		}
		if _, ok := scores["hose"]; ok {
			t.Errorf("score[hose] should be absent, got %v", scores["hose"])
		}
	})

	t.Run("history decays with age", func(t *testing.T) {
		t.Parallel()
		in := &Input{
			History: []models.OrderLine{
				{CustomerID: "c1", ProductID: "saw", Quantity: 1, OrderedAt: testNow.AddDate(0, 0, -30), Status: models.OrderCompleted},
			},
			Products: productIndex(saw),
			Now:      testNow,
		}
		scores, err := NewContent(ContentConfig{}).Score(context.Background(), in, []*models.Product{driver})
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if got := scores["driver"]; !approxEqual(got, math.Exp(-1)) {
			t.Errorf("score[driver] = %v, want %v", got, math.Exp(-1))
		}
	})

	t.Run("max over cart and history", func(t *testing.T) {
		t.Parallel()
		in := &Input{
			CartProducts: []*models.Product{hose},
			History: []models.OrderLine{
				{CustomerID: "c1", ProductID: "saw", Quantity: 1, OrderedAt: testNow, Status: models.OrderCompleted},
			},
			Products: productIndex(saw, hose),
			Now:      testNow,
		}
		scores, err := NewContent(ContentConfig{}).Score(context.Background(), in, []*models.Product{driver})
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if got := scores["driver"]; !approxEqual(got, 1) {
			t.Errorf("score[driver] = %v, want 1", got)
		}
	})

	t.Run("skips the candidate itself", func(t *testing.T) {
		t.Parallel()
		in := &Input{
			History: []models.OrderLine{
				{CustomerID: "c1", ProductID: "driver", Quantity: 1, OrderedAt: testNow, Status: models.OrderCompleted},
			},
			Products: productIndex(driver),
			Now:      testNow,
		}
		scores, err := NewContent(ContentConfig{}).Score(context.Background(), in, []*models.Product{driver})
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("Score() = %v, want empty", scores)
		}
	})

	t.Run("no cart and no history", func(t *testing.T) {
		t.Parallel()
		scores, err := NewContent(ContentConfig{}).Score(context.Background(), &Input{Now: testNow}, []*models.Product{driver})
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("Score() = %v, want empty", scores)
		}
	})
}
