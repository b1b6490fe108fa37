// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

// Package algorithms implements the sub-scorers of the hybrid product ranker.
//
// Each scorer implements the Scorer interface and produces a score in [0, 1]
// for every candidate product. Scorers read a shared, immutable Input built
// once per request by the engine and never mutate it, so the engine may run
// them concurrently.
//
// # Scorers
//
//   - Collaborative: "customers like you bought this" (similar-customer weighting)
//   - Content: strongest attribute match against cart and recency-weighted history
//   - Popularity: share of units sold in a trailing window
//   - BusinessRules: audience, stock, price tier, seasonal and novelty heuristics
package algorithms
