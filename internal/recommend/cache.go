// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/storefront-recs/internal/cache"
	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/models"
)

// cacheType labels recommendation cache metrics.
const cacheType = "recommend"

// cacheKeyParams is the hashed request signature. Quantities and request
// context are not part of it.
type cacheKeyParams struct {
	CustomerID   string   `json:"customer_id"`
	CustomerType string   `json:"customer_type"`
	Cart         []string `json:"cart"`
}

// CacheKey returns the deterministic cache key for a customer, segment and
// cart. The cart signature is the sorted, de-duplicated set of product ids,
// so item order and quantities do not matter.
func CacheKey(customerID string, customerType models.CustomerType, cart []models.CartItem) string {
	return cache.GenerateKey(cacheType, cacheKeyParams{
		CustomerID:   customerID,
		CustomerType: string(customerType),
		Cart:         cartSignature(cart),
	})
}

func cartSignature(cart []models.CartItem) []string {
	seen := make(map[string]struct{}, len(cart))
	ids := make([]string, 0, len(cart))
	for _, item := range cart {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Strings(ids)
	return ids
}

// lookupCache returns a copy of a fresh cached ranking. A panicking cache is
// reported as a cache error and treated as a miss.
func (e *Engine) lookupCache(key string) (cands []Candidate, hit bool, err error) {
	if e.cache == nil {
		return nil, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			cands, hit = nil, false
			err = &StageError{Kind: KindCache, Stage: "cache_lookup", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	cached, ok := e.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return copyCandidates(cached), true, nil
}

// storeCache saves a copy of a computed ranking.
func (e *Engine) storeCache(key string, cands []Candidate) (err error) {
	if e.cache == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Kind: KindCache, Stage: "cache_store", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	e.cache.Set(key, copyCandidates(cands))
	metrics.UpdateCacheSize(cacheType, e.cache.Len())
	return nil
}

// copyCandidates deep-copies the slices callers could mutate.
func copyCandidates(in []Candidate) []Candidate {
	out := make([]Candidate, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].Reasons = append([]string(nil), in[i].Reasons...)
		out[i].Product.Features = append([]string(nil), in[i].Product.Features...)
	}
	return out
}
