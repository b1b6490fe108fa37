// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/storefront-recs/config.yaml",
	"/etc/storefront-recs/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Collaborative: 0.4,
				Content:       0.3,
				Popularity:    0.2,
				Business:      0.1,
			},
			Thresholds: ThresholdsConfig{
				MinConfidence:       0.3,
				CollaborativeReason: 0.5,
				ContentReason:       0.5,
				PopularityReason:    0.3,
				BusinessReason:      0.5,
			},
			MaxResults:      6,
			FallbackResults: 3,
			FetchTimeout:    2 * time.Second,
			Cache: CacheConfig{
				Enabled:         true,
				TTL:             30 * time.Minute,
				MaxEntries:      1000,
				JanitorInterval: 5 * time.Minute,
			},
			Windows: WindowsConfig{
				Popularity:  90 * 24 * time.Hour,
				RecencyDays: 30,
			},
			Neighbor: NeighborConfig{
				MinSimilarity: 0.1,
				K:             10,
			},
			Business: BusinessConfig{
				AudienceMatchBonus:      0.3,
				AudienceMismatchPenalty: 0.2,
				InStockBonus:            0.2,
				OutOfStockPenalty:       0.5,
				PremiumPrice:            200,
				PremiumBonus:            0.2,
				EntryPrice:              50,
				EntryBonus:              0.1,
				NoveltyWindow:           30 * 24 * time.Hour,
				NoveltyBonus:            0.15,
			},
			Breaker: BreakerConfig{
				Enabled:     true,
				MaxFailures: 5,
				OpenTimeout: 30 * time.Second,
			},
		},
		Database: DatabaseConfig{
			Path:      "/data/storefront-recs.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            9464,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Defaults returns the built-in configuration before any file or
// environment overrides.
func Defaults() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// loadFrom loads configuration using configPath as the optional YAML layer.
func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RECOMMEND_CACHE_TTL -> recommend.cache.ttl
	// DUCKDB_PATH -> database.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Recommendation engine
	"recommend_weight_collaborative":   "recommend.weights.collaborative",
	"recommend_weight_content":         "recommend.weights.content",
	"recommend_weight_popularity":      "recommend.weights.popularity",
	"recommend_weight_business":        "recommend.weights.business",
	"recommend_min_confidence":         "recommend.thresholds.min_confidence",
	"recommend_max_results":            "recommend.max_results",
	"recommend_fallback_results":       "recommend.fallback_results",
	"recommend_fetch_timeout":          "recommend.fetch_timeout",
	"recommend_cache_enabled":          "recommend.cache.enabled",
	"recommend_cache_ttl":              "recommend.cache.ttl",
	"recommend_cache_max_entries":      "recommend.cache.max_entries",
	"recommend_cache_janitor_interval": "recommend.cache.janitor_interval",
	"recommend_popularity_window":      "recommend.windows.popularity",
	"recommend_recency_days":           "recommend.windows.recency_days",
	"recommend_neighbor_k":             "recommend.neighbors.k",
	"recommend_neighbor_min_sim":       "recommend.neighbors.min_similarity",
	"recommend_breaker_enabled":        "recommend.breaker.enabled",
	"recommend_breaker_max_failures":   "recommend.breaker.max_failures",
	"recommend_breaker_open_timeout":   "recommend.breaker.open_timeout",

	// Database mappings
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"fixture_path":      "database.fixture_path",

	// Ops server mappings
	"ops_host":            "server.host",
	"ops_port":            "server.port",
	"ops_read_timeout":    "server.read_timeout",
	"ops_write_timeout":   "server.write_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - RECOMMEND_CACHE_TTL -> recommend.cache.ttl
//   - DUCKDB_PATH -> database.path
//   - OPS_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
