// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/logging"
	"github.com/tomtom215/storefront-recs/internal/models"
)

// Fixture is the on-disk format accepted by LoadFixture.
//
//	{
//	  "products": [{"id": "filter-hepa", "category": "filters", "price": 24.5,
//	                "target_audience": "both", "in_stock": true,
//	                "features": ["hepa"], "created_at": "2026-01-02T00:00:00Z"}],
//	  "orders":   [{"customer_id": "c1", "product_id": "filter-hepa", "quantity": 1,
//	                "unit_price": 24.5, "order_timestamp": "2026-05-01T10:00:00Z",
//	                "order_status": "completed"}]
//	}
type Fixture struct {
	Products []models.Product   `json:"products"`
	Orders   []models.OrderLine `json:"orders"`
}

// LoadFixture reads a JSON fixture from path and writes its products and
// order lines.
func (db *DB) LoadFixture(ctx context.Context, path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("decode fixture %s: %w", path, err)
	}

	return db.ApplyFixture(ctx, &fx)
}

// ApplyFixture writes fx to the database.
func (db *DB) ApplyFixture(ctx context.Context, fx *Fixture) error {
	for i := range fx.Products {
		fx.Products[i].TargetAudience = models.ParseAudience(string(fx.Products[i].TargetAudience))
	}
	if err := db.InsertProducts(ctx, fx.Products); err != nil {
		return fmt.Errorf("load fixture products: %w", err)
	}
	if err := db.InsertOrderLines(ctx, fx.Orders); err != nil {
		return fmt.Errorf("load fixture orders: %w", err)
	}

	logging.Info().
		Int("products", len(fx.Products)).
		Int("order_lines", len(fx.Orders)).
		Msg("Fixture loaded")
	return nil
}
