// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package database is the DuckDB-backed store for the product catalog and order
history that the recommendation engine reads.

DB implements both recommend.CatalogReader and recommend.OrderReader, so the
daemon passes the same value twice:

	db, err := database.New(&cfg.Database)
	engine, err := recommend.NewEngine(recCfg, db, db, logger)

# Schema

Two tables are created on open:

  - products: id (primary key), category, price, target_audience, in_stock,
    features (JSON array stored as VARCHAR), created_at
  - order_lines: customer_id, product_id, quantity, unit_price,
    order_timestamp, order_status

Indexes on order_lines(customer_id, order_status) and
order_lines(order_status, order_timestamp) back the two order queries.
Products are only read as a full snapshot, so that table has no secondary
index.
They can be skipped with DatabaseConfig.SkipIndexes for fast test setup.

# Writes

The engine never writes. InsertProducts, InsertOrderLines and LoadFixture
exist so demos and tests can populate the store; production deployments are
expected to sync these tables from the storefront's own database.

# Timeouts

Every read applies a 30 second timeout on top of the caller's context, and
schema creation runs under its own 60 second context. All queries record
latency and errors through the metrics package.
*/
package database
