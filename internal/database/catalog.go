// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storefront-recs/internal/logging"
	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/models"
)

// ListProducts returns the full catalog ordered by id.
// Rows whose features column is not a JSON array are returned with no
// features rather than failing the whole snapshot.
func (db *DB) ListProducts(ctx context.Context) (products []models.Product, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "products", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, category, price, target_audience, in_stock, features, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var (
			p         models.Product
			audience  string
			features  string
			createdAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Category, &p.Price, &audience, &p.InStock, &features, &createdAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		p.TargetAudience = models.ParseAudience(audience)
		if createdAt.Valid {
			p.CreatedAt = createdAt.Time
		}
		if features != "" {
			if jerr := json.Unmarshal([]byte(features), &p.Features); jerr != nil {
				logging.Warn().Str("product_id", p.ID).Err(jerr).Msg("Ignoring malformed product features")
				p.Features = nil
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// CountProducts returns the number of catalog rows.
func (db *DB) CountProducts(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", "products", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// InsertProducts upserts products by id in a single transaction. When the
// same id appears more than once the last occurrence wins.
func (db *DB) InsertProducts(ctx context.Context, products []models.Product) (err error) {
	if len(products) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "products", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, category, price, target_audience, in_stock, features, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			target_audience = EXCLUDED.target_audience,
			in_stock = EXCLUDED.in_stock,
			features = EXCLUDED.features,
			created_at = EXCLUDED.created_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for _, p := range dedupeProducts(products) {
		if p.ID == "" {
			return fmt.Errorf("product id is required")
		}

		features, merr := json.Marshal(nonNil(p.Features))
		if merr != nil {
			err = fmt.Errorf("encode features for %s: %w", p.ID, merr)
			return err
		}

		audience := p.TargetAudience
		if audience == "" {
			audience = models.AudienceBoth
		}
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		if _, err = stmt.ExecContext(ctx,
			p.ID, p.Category, p.Price, string(audience), p.InStock, string(features), createdAt.UTC(),
		); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// dedupeProducts keeps the last occurrence of each id, preserving first-seen order.
func dedupeProducts(products []models.Product) []models.Product {
	pos := make(map[string]int, len(products))
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if at, ok := pos[products[i].ID]; ok {
			out[at] = products[i]
			continue
		}
		pos[products[i].ID] = len(out)
		out = append(out, products[i])
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
