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

	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/models"
)

const orderColumns = `customer_id, product_id, quantity, unit_price, order_timestamp, order_status`

// GetCustomerOrders returns the customer's order lines with the given status,
// oldest first.
func (db *DB) GetCustomerOrders(ctx context.Context, customerID string, status models.OrderStatus) (lines []models.OrderLine, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select_customer", "order_lines", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM order_lines
		WHERE customer_id = ? AND order_status = ?
		ORDER BY order_timestamp, product_id
	`, customerID, string(status))
	if err != nil {
		return nil, fmt.Errorf("query customer orders: %w", err)
	}
	defer closeQuietly(rows)

	return scanOrderLines(rows)
}

// ListCompletedOrders returns every completed order line placed at or after
// since, oldest first.
func (db *DB) ListCompletedOrders(ctx context.Context, since time.Time) (lines []models.OrderLine, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select_completed", "order_lines", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM order_lines
		WHERE order_status = ? AND order_timestamp >= ?
		ORDER BY order_timestamp, customer_id, product_id
	`, string(models.OrderCompleted), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query completed orders: %w", err)
	}
	defer closeQuietly(rows)

	return scanOrderLines(rows)
}

func scanOrderLines(rows *sql.Rows) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	for rows.Next() {
		var (
			l      models.OrderLine
			status string
		)
		if err := rows.Scan(&l.CustomerID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.OrderedAt, &status); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		l.Status = models.OrderStatus(status)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return lines, nil
}

// InsertOrderLines appends order lines in a single transaction.
func (db *DB) InsertOrderLines(ctx context.Context, lines []models.OrderLine) (err error) {
	if len(lines) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "order_lines", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO order_lines (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range lines {
		l := &lines[i]
		if l.CustomerID == "" || l.ProductID == "" {
			err = fmt.Errorf("order line %d: customer_id and product_id are required", i)
			return err
		}
		if l.OrderedAt.IsZero() {
			err = fmt.Errorf("order line %d: order_timestamp is required", i)
			return err
		}
		status := l.Status
		if status == "" {
			status = models.OrderCompleted
		}

		if _, err = stmt.ExecContext(ctx,
			l.CustomerID, l.ProductID, l.Quantity, l.UnitPrice, l.OrderedAt.UTC(), string(status),
		); err != nil {
			return fmt.Errorf("insert order line %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
