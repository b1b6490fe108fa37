// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package models

import (
	"strings"
	"time"
)

// CustomerType identifies the storefront segment a visitor belongs to.
type CustomerType string

const (
	// CustomerB2C is a consumer buyer.
	CustomerB2C CustomerType = "B2C"
	// CustomerB2B is a business buyer.
	CustomerB2B CustomerType = "B2B"
)

// Valid reports whether t is a known customer type.
func (t CustomerType) Valid() bool {
	return t == CustomerB2C || t == CustomerB2B
}

// Audience is the segment a product is marketed to.
type Audience string

const (
	AudienceB2C  Audience = "B2C"
	AudienceB2B  Audience = "B2B"
	AudienceBoth Audience = "both"
)

// ParseAudience normalizes a stored audience value. Unknown or empty values
// are treated as universal so partial catalog rows stay usable.
func ParseAudience(s string) Audience {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B2C":
		return AudienceB2C
	case "B2B":
		return AudienceB2B
	default:
		return AudienceBoth
	}
}

// Matches reports whether a product with this audience may be shown to the
// given customer type.
func (a Audience) Matches(t CustomerType) bool {
	if a == AudienceBoth || a == "" {
		return true
	}
	return string(a) == string(t)
}

// Product is an immutable catalog snapshot row.
type Product struct {
	// ID is the unique catalog identifier.
	ID string `json:"id"`

	// Category is the merchandising category (e.g. "filters").
	Category string `json:"category"`

	// Price is the list price in currency units. Must be > 0 for a well formed row.
	Price float64 `json:"price"`

	// TargetAudience is B2C, B2B or both.
	TargetAudience Audience `json:"target_audience"`

	// InStock reports current availability.
	InStock bool `json:"in_stock"`

	// Features is the product feature set. Nil is treated as empty.
	Features []string `json:"features,omitempty"`

	// CreatedAt is when the product was added to the catalog.
	CreatedAt time.Time `json:"created_at"`
}

// FeatureSet returns the product features as a set with duplicates removed.
func (p *Product) FeatureSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Features))
	for _, f := range p.Features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}
