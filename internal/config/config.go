// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_WEIGHT_COLLABORATIVE, RECOMMEND_WEIGHT_CONTENT,
//     RECOMMEND_WEIGHT_POPULARITY, RECOMMEND_WEIGHT_BUSINESS: blend weights
//   - RECOMMEND_MIN_CONFIDENCE: drop candidates below this score (default: 0.3)
//   - RECOMMEND_MAX_RESULTS: result cap (default: 6)
//   - RECOMMEND_CACHE_TTL: result cache TTL (default: 30m)
//   - RECOMMEND_CACHE_MAX_ENTRIES: lazy purge threshold (default: 1000)
//   - RECOMMEND_POPULARITY_WINDOW: trailing sales window (default: 2160h)
type RecommendConfig struct {
	Weights    WeightsConfig    `koanf:"weights"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`

	// MaxResults caps ranked results per request.
	// Default: 6
	MaxResults int `koanf:"max_results"`

	// FallbackResults caps the degraded ranking.
	// Default: 3
	FallbackResults int `koanf:"fallback_results"`

	// FetchTimeout bounds each catalog or order query. Zero disables it.
	// Default: 2s
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	Cache    CacheConfig    `koanf:"cache"`
	Windows  WindowsConfig  `koanf:"windows"`
	Neighbor NeighborConfig `koanf:"neighbors"`
	Business BusinessConfig `koanf:"business"`
	Breaker  BreakerConfig  `koanf:"breaker"`

	// Seasonal overrides the built-in seasonal category table when non-empty.
	Seasonal []SeasonalRule `koanf:"seasonal"`
}

// WeightsConfig holds the blend weights. They must sum to at most 1.
type WeightsConfig struct {
	Collaborative float64 `koanf:"collaborative"`
	Content       float64 `koanf:"content"`
	Popularity    float64 `koanf:"popularity"`
	Business      float64 `koanf:"business"`
}

// ThresholdsConfig holds the confidence cut-off and reason thresholds.
type ThresholdsConfig struct {
	MinConfidence       float64 `koanf:"min_confidence"`
	CollaborativeReason float64 `koanf:"collaborative_reason"`
	ContentReason       float64 `koanf:"content_reason"`
	PopularityReason    float64 `koanf:"popularity_reason"`
	BusinessReason      float64 `koanf:"business_reason"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`

	// JanitorInterval is how often expired entries are purged in the
	// background. Zero disables the janitor; lazy purging still applies.
	// Default: 5m
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// WindowsConfig holds time windows used by the scorers.
type WindowsConfig struct {
	// Popularity is the trailing sales window. Default: 90 days.
	Popularity time.Duration `koanf:"popularity"`

	// RecencyDays is the decay constant for purchase history. Default: 30.
	RecencyDays float64 `koanf:"recency_days"`
}

// NeighborConfig bounds the similar-customer neighbourhood.
type NeighborConfig struct {
	MinSimilarity float64 `koanf:"min_similarity"`
	K             int     `koanf:"k"`
}

// BusinessConfig holds merchandising rule bonuses and penalties.
type BusinessConfig struct {
	AudienceMatchBonus      float64       `koanf:"audience_match_bonus"`
	AudienceMismatchPenalty float64       `koanf:"audience_mismatch_penalty"`
	InStockBonus            float64       `koanf:"in_stock_bonus"`
	OutOfStockPenalty       float64       `koanf:"out_of_stock_penalty"`
	PremiumPrice            float64       `koanf:"premium_price"`
	PremiumBonus            float64       `koanf:"premium_bonus"`
	EntryPrice              float64       `koanf:"entry_price"`
	EntryBonus              float64       `koanf:"entry_bonus"`
	NoveltyWindow           time.Duration `koanf:"novelty_window"`
	NoveltyBonus            float64       `koanf:"novelty_bonus"`
}

// BreakerConfig holds collaborator circuit breaker settings.
type BreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxFailures uint32        `koanf:"max_failures"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// SeasonalRule marks categories as in season for a named season or a set of
// months (1-12). A zero Bonus uses the engine default.
type SeasonalRule struct {
	Season     string   `koanf:"season"`
	Months     []int    `koanf:"months"`
	Categories []string `koanf:"categories"`
	Bonus      float64  `koanf:"bonus"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB file. Empty or ":memory:" opens an in-memory database.
	Path string `koanf:"path"`

	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)

	// FixturePath is an optional JSON file loaded into the catalog and order
	// tables at startup. Intended for demos and local runs.
	FixturePath string `koanf:"fixture_path"`

	SkipIndexes bool `koanf:"skip_indexes"` // Skip index creation (for fast test setup)
}

// IsInMemory reports whether the database lives only in memory.
func (d *DatabaseConfig) IsInMemory() bool {
	return d.Path == "" || d.Path == ":memory:"
}

// ServerConfig holds the ops HTTP server settings (metrics and health).
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs requests are allowed per RateLimitWindow per client IP.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
