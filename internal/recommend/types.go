// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"time"

	"github.com/tomtom215/storefront-recs/internal/models"
)

// RecommendationType labels the dominant signal behind a candidate.
type RecommendationType string

const (
	// TypeCollaborative means similar customers bought the product.
	TypeCollaborative RecommendationType = "collaborative"
	// TypeContentBased means the product complements the cart or history.
	TypeContentBased RecommendationType = "content_based"
	// TypeTrending means the product sells well right now.
	TypeTrending RecommendationType = "trending"
	// TypeBusinessRules means merchandising rules favoured the product.
	TypeBusinessRules RecommendationType = "business_rules"
	// TypeGeneral means no single signal stood out.
	TypeGeneral RecommendationType = "general"
	// TypeFallback marks candidates produced by the degraded path.
	TypeFallback RecommendationType = "fallback"
)

// Reason strings attached to candidates.
const (
	ReasonSimilarCustomers = "recommended by similar customers"
	ReasonComplements      = "complements your other items"
	ReasonTrending         = "trending"
	ReasonFitsProfile      = "fits your profile"
	ReasonGeneral          = "recommended for you"
)

// Path records how a response was produced.
type Path string

const (
	PathCacheHit Path = "cache_hit"
	PathComputed Path = "computed"
	PathFallback Path = "fallback"
)

// Request contains parameters for a recommendation request.
type Request struct {
	// CustomerID identifies the customer. Empty for anonymous visitors.
	CustomerID string `json:"customer_id,omitempty"`

	// Cart is the current cart. Its products are never recommended.
	Cart []models.CartItem `json:"cart" validate:"dive"`

	// CustomerType is the customer segment. Empty means B2C.
	CustomerType models.CustomerType `json:"customer_type" validate:"customer_type"`

	// Context carries optional signals such as "page", "month" (1-12)
	// and "season".
	Context map[string]any `json:"context,omitempty"`

	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Candidate is a ranked product suggestion.
type Candidate struct {
	Product models.Product `json:"product"`

	CollaborativeScore float64 `json:"collaborative_score"`
	ContentScore       float64 `json:"content_score"`
	PopularityScore    float64 `json:"popularity_score"`
	BusinessScore      float64 `json:"business_score"`

	// BlendedScore is the weighted sum of the sub-scores.
	BlendedScore float64 `json:"blended_score"`

	// Reasons are human-readable explanations in priority order.
	Reasons []string `json:"reasons"`

	Type       RecommendationType `json:"recommendation_type"`
	Confidence float64            `json:"confidence"`
	Timestamp  time.Time          `json:"timestamp"`
}

// Response contains ranked candidates and request metadata.
type Response struct {
	Candidates []Candidate      `json:"candidates"`
	Metadata   ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about how recommendations were produced.
type ResponseMetadata struct {
	RequestID    string              `json:"request_id"`
	CustomerID   string              `json:"customer_id,omitempty"`
	CustomerType models.CustomerType `json:"customer_type"`

	// Path is cache_hit, computed or fallback.
	Path     Path `json:"path"`
	CacheHit bool `json:"cache_hit"`

	// FallbackReason is the error that forced the degraded path, or
	// "empty" when the pipeline produced nothing.
	FallbackReason string `json:"fallback_reason,omitempty"`

	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats contains engine counters.
type Stats struct {
	Requests      int64 `json:"requests"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	Computed      int64 `json:"computed"`
	Fallbacks     int64 `json:"fallbacks"`
	SharedResults int64 `json:"shared_results"`

	// StageErrors counts failures by error kind.
	StageErrors map[string]int64 `json:"stage_errors"`

	// RetryableErrors counts the stage failures expected to clear on retry.
	RetryableErrors int64 `json:"retryable_errors"`

	CacheEntries int `json:"cache_entries"`

	// Breakers maps collaborator name to circuit breaker state. Nil when
	// breakers are disabled.
	Breakers map[string]string `json:"breakers,omitempty"`
}
