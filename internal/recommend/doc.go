// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

// Package recommend implements the hybrid product recommendation pipeline.
//
// # Architecture
//
// A request flows through the following stages:
//
//   - Validation: cart lines and customer type are checked
//   - Cache: results are keyed by customer, segment and sorted cart ids
//   - Snapshot: catalog, customer history and recent orders are fetched
//     concurrently, each behind a circuit breaker
//   - Scoring: collaborative, content, popularity and business scorers run
//     in parallel (see the algorithms subpackage)
//   - Blending: sub-scores are combined with configured weights, filtered by
//     minimum confidence, explained and ranked
//   - Fallback: any failure or empty result degrades to a price-sorted list
//     of in-stock products for the customer's segment
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, db, db, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp := engine.Recommend(ctx, recommend.Request{
//	    CustomerID:   "cust-42",
//	    CustomerType: models.CustomerB2C,
//	    Cart:         []models.CartItem{{ProductID: "filter-30", Quantity: 1}},
//	})
//
// Recommend never returns an error. Response.Metadata.Path reports whether
// the result was computed, served from cache or produced by the fallback.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Concurrent identical requests share
// a single computation, and every caller receives its own copy of the
// candidates.
package recommend
