// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context for schema operations. DDL on a cold
// file-backed database can take longer than a normal query.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR PRIMARY KEY,
			category VARCHAR NOT NULL DEFAULT '',
			price DOUBLE NOT NULL DEFAULT 0,
			target_audience VARCHAR NOT NULL DEFAULT 'both',
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			features VARCHAR NOT NULL DEFAULT '[]',
			created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			customer_id VARCHAR NOT NULL,
			product_id VARCHAR NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			unit_price DOUBLE NOT NULL DEFAULT 0,
			order_timestamp TIMESTAMP NOT NULL,
			order_status VARCHAR NOT NULL
		)`,
	}
}

func indexCreationQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_order_lines_customer ON order_lines(customer_id, order_status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_status_time ON order_lines(order_status, order_timestamp)`,
	}
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
