// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
)

func seedOrders(t *testing.T, db *DB) {
	t.Helper()

	lines := []models.OrderLine{
		testLine("c1", "p2", baseTime.Add(-2*time.Hour), models.OrderCompleted),
		testLine("c1", "p1", baseTime.Add(-48*time.Hour), models.OrderCompleted),
		testLine("c1", "p3", baseTime.Add(-time.Hour), models.OrderCancelled),
		testLine("c2", "p1", baseTime.Add(-30*24*time.Hour), models.OrderCompleted),
		testLine("c2", "p4", baseTime.Add(-time.Hour), models.OrderPending),
	}
	if err := db.InsertOrderLines(context.Background(), lines); err != nil {
		t.Fatalf("InsertOrderLines() error = %v", err)
	}
}

func lineProducts(lines []models.OrderLine) []string {
	ids := make([]string, len(lines))
	for i := range lines {
		ids[i] = lines[i].ProductID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetCustomerOrders(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedOrders(t, db)
	ctx := context.Background()

	tests := []struct {
		name     string
		customer string
		status   models.OrderStatus
		want     []string
	}{
		{"completed oldest first", "c1", models.OrderCompleted, []string{"p1", "p2"}},
		{"cancelled only", "c1", models.OrderCancelled, []string{"p3"}},
		{"pending for other customer", "c2", models.OrderPending, []string{"p4"}},
		{"unknown customer", "nobody", models.OrderCompleted, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := db.GetCustomerOrders(ctx, tt.customer, tt.status)
			if err != nil {
				t.Fatalf("GetCustomerOrders() error = %v", err)
			}
			if got := lineProducts(lines); !equalStrings(got, tt.want) {
				t.Errorf("products = %v, want %v", got, tt.want)
			}
			for i := range lines {
				if lines[i].Status != tt.status || lines[i].CustomerID != tt.customer {
					t.Errorf("unexpected line %+v", lines[i])
				}
			}
		})
	}
}

func TestGetCustomerOrders_RoundTripsFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	at := baseTime.Add(-3 * time.Hour)
	in := models.OrderLine{CustomerID: "c9", ProductID: "p9", Quantity: 4, UnitPrice: 12.25, OrderedAt: at, Status: models.OrderCompleted}
	if err := db.InsertOrderLines(ctx, []models.OrderLine{in}); err != nil {
		t.Fatalf("InsertOrderLines() error = %v", err)
	}

	lines, err := db.GetCustomerOrders(ctx, "c9", models.OrderCompleted)
	if err != nil {
		t.Fatalf("GetCustomerOrders() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	got := lines[0]
	if got.Quantity != 4 || got.UnitPrice != 12.25 || !got.OrderedAt.Equal(at) {
		t.Errorf("line = %+v, want %+v", got, in)
	}
}

func TestListCompletedOrders(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedOrders(t, db)
	ctx := context.Background()

	lines, err := db.ListCompletedOrders(ctx, baseTime.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("ListCompletedOrders() error = %v", err)
	}
	if got := lineProducts(lines); !equalStrings(got, []string{"p1", "p2"}) {
		t.Errorf("products = %v, want [p1 p2]", got)
	}

	// The window boundary is inclusive.
	lines, err = db.ListCompletedOrders(ctx, baseTime.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("ListCompletedOrders() error = %v", err)
	}
	if got := lineProducts(lines); !equalStrings(got, []string{"p2"}) {
		t.Errorf("products = %v, want [p2]", got)
	}

	lines, err = db.ListCompletedOrders(ctx, baseTime)
	if err != nil {
		t.Fatalf("ListCompletedOrders() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines after baseTime, got %v", lineProducts(lines))
	}
}

func TestInsertOrderLines_Validation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		line models.OrderLine
	}{
		{"missing customer", models.OrderLine{ProductID: "p1", OrderedAt: baseTime}},
		{"missing product", models.OrderLine{CustomerID: "c1", OrderedAt: baseTime}},
		{"missing timestamp", models.OrderLine{CustomerID: "c1", ProductID: "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.InsertOrderLines(ctx, []models.OrderLine{tt.line}); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	lines, err := db.ListCompletedOrders(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListCompletedOrders() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("rejected lines were written: %+v", lines)
	}
}

func TestInsertOrderLines_DefaultsToCompleted(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	line := models.OrderLine{CustomerID: "c1", ProductID: "p1", Quantity: 1, OrderedAt: baseTime}
	if err := db.InsertOrderLines(ctx, []models.OrderLine{line}); err != nil {
		t.Fatalf("InsertOrderLines() error = %v", err)
	}

	lines, err := db.GetCustomerOrders(ctx, "c1", models.OrderCompleted)
	if err != nil {
		t.Fatalf("GetCustomerOrders() error = %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("got %d completed lines, want 1", len(lines))
	}
}
