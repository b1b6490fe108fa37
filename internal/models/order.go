// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package models

import "time"

// OrderStatus is the lifecycle state of an order line.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// OrderLine is a read-only row of order history.
type OrderLine struct {
	CustomerID string      `json:"customer_id"`
	ProductID  string      `json:"product_id"`
	Quantity   int         `json:"quantity"`
	UnitPrice  float64     `json:"unit_price"`
	OrderedAt  time.Time   `json:"order_timestamp"`
	Status     OrderStatus `json:"order_status"`
}

// Completed reports whether the line belongs to a completed order.
func (o *OrderLine) Completed() bool {
	return o.Status == OrderCompleted
}

// CartItem is a single line of the visitor's current cart.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}
