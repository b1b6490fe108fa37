// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/models"
)

// CatalogReader provides read-only access to the active product catalog.
// This is typically implemented by the database layer.
type CatalogReader interface {
	// ListProducts returns the full active catalog snapshot.
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// OrderReader provides read-only access to order history.
type OrderReader interface {
	// GetCustomerOrders returns the customer's order lines with the given status.
	GetCustomerOrders(ctx context.Context, customerID string, status models.OrderStatus) ([]models.OrderLine, error)

	// ListCompletedOrders returns every completed order line placed at or
	// after since.
	ListCompletedOrders(ctx context.Context, since time.Time) ([]models.OrderLine, error)
}

// Breaker names, also used as metric labels.
const (
	breakerCatalog = "catalog"
	breakerOrders  = "orders"
)

// newBreaker creates a circuit breaker that opens after MaxFailures
// consecutive failures. Caller cancellation does not count as a failure.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func newBreaker[T any](name string, cfg BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("collaborator circuit breaker state changed")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			metrics.RecordBreakerState(name, int(to))
		},
	}
	metrics.RecordBreakerState(name, int(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[T](settings)
}

// GuardedCatalog wraps a CatalogReader in a circuit breaker.
type GuardedCatalog struct {
	next CatalogReader
	cb   *gobreaker.CircuitBreaker[[]models.Product]
}

// GuardCatalog wraps c in a circuit breaker configured by cfg.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func GuardCatalog(c CatalogReader, cfg BreakerConfig, logger zerolog.Logger) *GuardedCatalog {
	return &GuardedCatalog{
		next: c,
		cb:   newBreaker[[]models.Product](breakerCatalog, cfg, logger),
	}
}

// ListProducts implements CatalogReader.
func (g *GuardedCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return g.cb.Execute(func() ([]models.Product, error) {
		return g.next.ListProducts(ctx)
	})
}

// State returns the breaker state (closed, half-open, open).
func (g *GuardedCatalog) State() string {
	return g.cb.State().String()
}

// GuardedOrders wraps an OrderReader in a circuit breaker shared by both
// order queries.
type GuardedOrders struct {
	next OrderReader
	cb   *gobreaker.CircuitBreaker[[]models.OrderLine]
}

// GuardOrders wraps o in a circuit breaker configured by cfg.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func GuardOrders(o OrderReader, cfg BreakerConfig, logger zerolog.Logger) *GuardedOrders {
	return &GuardedOrders{
		next: o,
		cb:   newBreaker[[]models.OrderLine](breakerOrders, cfg, logger),
	}
}

// GetCustomerOrders implements OrderReader.
func (g *GuardedOrders) GetCustomerOrders(ctx context.Context, customerID string, status models.OrderStatus) ([]models.OrderLine, error) {
	return g.cb.Execute(func() ([]models.OrderLine, error) {
		return g.next.GetCustomerOrders(ctx, customerID, status)
	})
}

// ListCompletedOrders implements OrderReader.
func (g *GuardedOrders) ListCompletedOrders(ctx context.Context, since time.Time) ([]models.OrderLine, error) {
	return g.cb.Execute(func() ([]models.OrderLine, error) {
		return g.next.ListCompletedOrders(ctx, since)
	})
}

// State returns the breaker state (closed, half-open, open).
func (g *GuardedOrders) State() string {
	return g.cb.State().String()
}

var (
	_ CatalogReader = (*GuardedCatalog)(nil)
	_ OrderReader   = (*GuardedOrders)(nil)
)
