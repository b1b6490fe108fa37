// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/storefront-recs/internal/cache"
	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/models"
	"github.com/tomtom215/storefront-recs/internal/recommend/algorithms"
	"github.com/tomtom215/storefront-recs/internal/recommend/similarity"
	"github.com/tomtom215/storefront-recs/internal/validation"
)

// fallbackEmpty is the fallback reason when the pipeline produced nothing.
const fallbackEmpty = "empty"

// Engine coordinates snapshot fetches, scoring, blending, caching and the
// fallback path. It is safe for concurrent use.
//
// Only computed rankings are cached. Fallback responses are rebuilt on every
// call, so repeated requests that degrade to the fallback path hit the
// collaborators again and carry fresh timestamps.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog CatalogReader
	orders  OrderReader
	scorers []algorithms.Scorer

	// Set when the breaker is enabled.
	catalogGuard *GuardedCatalog
	ordersGuard  *GuardedOrders

	cache *cache.Cache[[]Candidate]
	group singleflight.Group
	now   func() time.Time

	// lastCatalog is the most recent successful catalog fetch. The fallback
	// path uses it when the catalog collaborator is down.
	lastCatalog atomic.Pointer[[]models.Product]

	requestCount   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	computedCount  atomic.Int64
	fallbackCount  atomic.Int64
	sharedCount    atomic.Int64
	retryableCount atomic.Int64

	stageMu     sync.Mutex
	stageErrors map[string]int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithScorers replaces the default scorer set.
func WithScorers(scorers ...algorithms.Scorer) Option {
	return func(e *Engine) {
		e.scorers = scorers
	}
}

// WithClock overrides the engine clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig.
// orders may be nil, in which case every customer is treated as new.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog CatalogReader, orders OrderReader, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog reader is required")
	}

	logger = logger.With().Str("component", "recommend").Logger()

	e := &Engine{
		config:      cfg,
		logger:      logger,
		catalog:     catalog,
		orders:      orders,
		scorers:     DefaultScorers(cfg),
		now:         time.Now,
		stageErrors: make(map[string]int64),
	}

	if cfg.Breaker.Enabled {
		e.catalogGuard = GuardCatalog(catalog, cfg.Breaker, logger)
		e.catalog = e.catalogGuard
		if orders != nil {
			e.ordersGuard = GuardOrders(orders, cfg.Breaker, logger)
			e.orders = e.ordersGuard
		}
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg.Cache.Enabled {
		e.cache = cache.New[[]Candidate](cfg.Cache.TTL,
			cache.WithMaxEntries(cfg.Cache.MaxEntries),
			cache.WithClock(e.now),
		)
	}

	return e, nil
}

// DefaultScorers builds the four standard scorers from cfg.
func DefaultScorers(cfg *Config) []algorithms.Scorer {
	return []algorithms.Scorer{
		algorithms.NewCollaborative(),
		algorithms.NewContent(algorithms.ContentConfig{RecencyDays: cfg.Windows.RecencyDays}),
		algorithms.NewPopularity(algorithms.PopularityConfig{Window: cfg.Windows.Popularity}),
		algorithms.NewBusinessRules(cfg.Business, algorithms.NewSeasonTable(cfg.SeasonalRules)),
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// GetRecommendations returns ranked candidates for a customer and cart.
// It never fails; errors are absorbed by the fallback path.
//
//nolint:gocritic // hugeParam: context map passed through unchanged
func (e *Engine) GetRecommendations(ctx context.Context, customerID string, cart []models.CartItem, customerType models.CustomerType, reqCtx map[string]any) []Candidate {
	return e.Recommend(ctx, Request{
		CustomerID:   customerID,
		Cart:         cart,
		CustomerType: customerType,
		Context:      reqCtx,
	}).Candidates
}

// flightResult is the outcome shared by concurrent identical requests.
type flightResult struct {
	candidates []Candidate
	path       Path
	reason     string
}

// Recommend runs the full pipeline for one request. The returned response is
// never nil and its candidates are owned by the caller.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) *Response {
	start := e.now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.CustomerType == "" {
		req.CustomerType = models.CustomerB2C
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Int("cart_items", len(req.Cart)).Msg("processing recommendation request")

	if verr := validation.ValidateStruct(req); verr != nil {
		serr := computationError("validate", verr)
		e.recordStageError(serr, logger)
		res := e.fallback(nil, req, serr)
		return e.respond(req, res, start, logger)
	}

	key := CacheKey(req.CustomerID, req.CustomerType, req.Cart)

	cached, hit, err := e.lookupCache(key)
	if err != nil {
		e.recordStageError(err, logger)
	}
	if hit {
		e.recordCacheOutcome(true)
		return e.respond(req, &flightResult{candidates: cached, path: PathCacheHit}, start, logger)
	}

	// The leader keeps computing if its caller goes away so that followers
	// still get a result.
	flightCtx := context.WithoutCancel(ctx)
	ch := e.group.DoChan(key, func() (any, error) {
		return e.computeOrFallback(flightCtx, key, req, logger), nil
	})

	select {
	case <-ctx.Done():
		e.recordCacheOutcome(false)
		serr := computationError("wait", ctx.Err())
		e.recordStageError(serr, logger)
		return e.respond(req, e.fallback(nil, req, serr), start, logger)
	case r := <-ch:
		res, _ := r.Val.(*flightResult)
		e.recordCacheOutcome(res.path == PathCacheHit)
		if r.Shared {
			e.sharedCount.Add(1)
			metrics.RecordSingleflightShared()
		}
		return e.respond(req, &flightResult{
			candidates: copyCandidates(res.candidates),
			path:       res.path,
			reason:     res.reason,
		}, start, logger)
	}
}

// computeOrFallback runs inside the singleflight leader.
//
//nolint:gocritic // hugeParam: req and logger passed by value
func (e *Engine) computeOrFallback(ctx context.Context, key string, req Request, logger zerolog.Logger) *flightResult {
	// Another flight may have filled the cache between the caller's lookup
	// and this flight starting.
	if cached, hit, err := e.lookupCache(key); err == nil && hit {
		return &flightResult{candidates: cached, path: PathCacheHit}
	}

	snap, err := e.fetchSnapshot(ctx, req)
	if err != nil {
		e.recordStageError(err, logger)
		return e.fallback(snap, req, err)
	}

	cands, err := e.compute(ctx, snap, req, logger)
	if err != nil {
		e.recordStageError(err, logger)
		return e.fallback(snap, req, err)
	}
	if len(cands) == 0 {
		return e.fallback(snap, req, nil)
	}

	if err := e.storeCache(key, cands); err != nil {
		e.recordStageError(err, logger)
	}
	return &flightResult{candidates: cands, path: PathComputed}
}

// snapshot is the data read from collaborators for one computation.
type snapshot struct {
	catalog      []models.Product
	catalogOK    bool
	history      []models.OrderLine
	recentOrders []models.OrderLine
	now          time.Time
}

// fetchSnapshot reads the catalog, customer history and recent completed
// orders concurrently. Each call is bounded by Limits.FetchTimeout. A partial
// snapshot is returned alongside any error so the fallback can reuse the
// catalog.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fetchSnapshot(ctx context.Context, req Request) (*snapshot, error) {
	snap := &snapshot{now: e.now()}
	timeout := e.config.Limits.FetchTimeout

	var g errgroup.Group

	g.Go(func() error {
		fctx, cancel := withFetchTimeout(ctx, timeout)
		defer cancel()

		products, err := callCollaborator(fctx, e.catalog.ListProducts)
		if err != nil {
			return collaboratorError("fetch_catalog", err)
		}
		snap.catalog = products
		snap.catalogOK = true
		e.lastCatalog.Store(&products)
		return nil
	})

	if e.orders != nil {
		if req.CustomerID != "" {
			g.Go(func() error {
				fctx, cancel := withFetchTimeout(ctx, timeout)
				defer cancel()

				lines, err := callCollaborator(fctx, func(ctx context.Context) ([]models.OrderLine, error) {
					return e.orders.GetCustomerOrders(ctx, req.CustomerID, models.OrderCompleted)
				})
				if err != nil {
					return collaboratorError("fetch_history", err)
				}
				snap.history = lines
				return nil
			})
		}

		g.Go(func() error {
			fctx, cancel := withFetchTimeout(ctx, timeout)
			defer cancel()

			since := snap.now.Add(-e.config.Windows.Popularity)
			lines, err := callCollaborator(fctx, func(ctx context.Context) ([]models.OrderLine, error) {
				return e.orders.ListCompletedOrders(ctx, since)
			})
			if err != nil {
				return collaboratorError("fetch_orders", err)
			}
			snap.recentOrders = lines
			return nil
		})
	}

	return snap, g.Wait()
}

// callCollaborator runs fn on its own goroutine and returns when fn does or
// when ctx ends, whichever comes first. A collaborator that ignores ctx is
// abandoned rather than waited on. Panics are returned as errors.
func callCollaborator[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}

	done := make(chan result, 1)
	go func() {
		var res result
		defer func() {
			if r := recover(); r != nil {
				res.err = fmt.Errorf("panic: %v", r)
			}
			done <- res
		}()
		res.val, res.err = fn(ctx)
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// withFetchTimeout bounds a collaborator call. Zero disables the deadline.
func withFetchTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// compute builds scorer input, fans out to every scorer and blends.
//
//nolint:gocritic // hugeParam: req and logger passed by value
func (e *Engine) compute(ctx context.Context, snap *snapshot, req Request, logger zerolog.Logger) ([]Candidate, error) {
	if len(snap.catalog) == 0 {
		return nil, nil
	}

	in, catalog := e.buildInput(snap, req, logger)

	cartSet := make(map[string]struct{}, len(req.Cart))
	for _, item := range req.Cart {
		cartSet[item.ProductID] = struct{}{}
	}
	pool := candidatePool(catalog, cartSet)
	if len(pool) == 0 {
		return nil, nil
	}

	scores, err := e.runScorers(ctx, in, pool)
	if err != nil {
		return nil, err
	}

	return Blend(e.config, pool, scores, snap.now), nil
}

// buildInput indexes the catalog and derives neighbours and seasonal context.
// Products without an id are skipped.
//
//nolint:gocritic // hugeParam: req and logger passed by value
func (e *Engine) buildInput(snap *snapshot, req Request, logger zerolog.Logger) (*algorithms.Input, []models.Product) {
	valid := make([]models.Product, 0, len(snap.catalog))
	index := make(map[string]*models.Product, len(snap.catalog))
	skipped := 0
	for i := range snap.catalog {
		if strings.TrimSpace(snap.catalog[i].ID) == "" {
			skipped++
			continue
		}
		valid = append(valid, snap.catalog[i])
	}
	for i := range valid {
		index[valid[i].ID] = &valid[i]
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("skipped catalog products without id")
	}

	cart := make([]*models.Product, 0, len(req.Cart))
	for _, item := range req.Cart {
		if p, ok := index[item.ProductID]; ok {
			cart = append(cart, p)
		}
	}

	sets := similarity.PurchaseSets(snap.recentOrders)

	var neighbors []similarity.Neighbor
	if req.CustomerID != "" {
		target := similarity.PurchaseSets(snap.history)[req.CustomerID]
		neighbors = similarity.Customers(req.CustomerID, target, sets, similarity.NeighborOptions{
			MinSimilarity: e.config.Neighbors.MinSimilarity,
			K:             e.config.Neighbors.K,
		})
	}

	month, season := seasonalContext(req.Context, snap.now)

	return &algorithms.Input{
		CustomerID:   req.CustomerID,
		CustomerType: req.CustomerType,
		CartProducts: cart,
		History:      snap.history,
		RecentOrders: snap.recentOrders,
		PurchaseSets: sets,
		Neighbors:    neighbors,
		Products:     index,
		Now:          snap.now,
		Month:        month,
		Season:       season,
	}, valid
}

// runScorers runs every scorer concurrently. A scorer error or panic fails
// the whole computation.
func (e *Engine) runScorers(ctx context.Context, in *algorithms.Input, pool []*models.Product) (ScoreTable, error) {
	results := make([]map[string]float64, len(e.scorers))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range e.scorers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = computationError("score_"+s.Name(), fmt.Errorf("panic: %v", r))
				}
			}()

			start := time.Now()
			scores, err := s.Score(gctx, in, pool)
			metrics.RecordScorer(s.Name(), time.Since(start))
			if err != nil {
				return computationError("score_"+s.Name(), err)
			}
			results[i] = scores
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := make(ScoreTable, len(e.scorers))
	for i, s := range e.scorers {
		table[s.Name()] = results[i]
	}
	return table, nil
}

// fallback produces the degraded ranking from the snapshot catalog, or the
// last known catalog when the snapshot has none. A nil cause means the
// pipeline produced nothing.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fallback(snap *snapshot, req Request, cause error) *flightResult {
	var catalog []models.Product
	switch {
	case snap != nil && snap.catalogOK:
		catalog = snap.catalog
	default:
		if last := e.lastCatalog.Load(); last != nil {
			catalog = *last
		}
	}

	exclude := make(map[string]struct{}, len(req.Cart))
	for _, item := range req.Cart {
		exclude[item.ProductID] = struct{}{}
	}

	reason := fallbackEmpty
	if cause != nil {
		reason = cause.Error()
	}

	return &flightResult{
		candidates: Fallback(e.config, catalog, req.CustomerType, exclude, e.now()),
		path:       PathFallback,
		reason:     reason,
	}
}

// respond records metrics and builds the caller's response.
//
//nolint:gocritic // hugeParam: req and logger passed by value
func (e *Engine) respond(req Request, res *flightResult, start time.Time, logger zerolog.Logger) *Response {
	switch res.path {
	case PathComputed:
		e.computedCount.Add(1)
	case PathFallback:
		e.fallbackCount.Add(1)
	}

	if res.candidates == nil {
		res.candidates = []Candidate{}
	}

	latency := e.now().Sub(start)
	metrics.RecordRecommendation(string(res.path), latency, len(res.candidates))

	event := logger.Debug()
	if res.path == PathFallback {
		event = logger.Info().Str("fallback_reason", res.reason)
	}
	event.Str("path", string(res.path)).
		Int("results", len(res.candidates)).
		Dur("latency", latency).
		Msg("recommendation request completed")

	return &Response{
		Candidates: res.candidates,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			CustomerID:     req.CustomerID,
			CustomerType:   req.CustomerType,
			Path:           res.path,
			CacheHit:       res.path == PathCacheHit,
			FallbackReason: res.reason,
			LatencyMS:      latency.Milliseconds(),
			Timestamp:      start,
		},
	}
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func (e *Engine) recordStageError(err error, logger zerolog.Logger) {
	kind := kindOf(err)
	stage := "unknown"
	retryable := false
	var serr *StageError
	if errors.As(err, &serr) {
		stage = serr.Stage
		retryable = serr.Retryable()
	}

	e.stageMu.Lock()
	e.stageErrors[string(kind)]++
	e.stageMu.Unlock()
	if retryable {
		e.retryableCount.Add(1)
	}

	metrics.RecordStageError(string(kind), stage)
	logger.Warn().Err(err).
		Str("kind", string(kind)).
		Str("stage", stage).
		Bool("retryable", retryable).
		Msg("recommendation stage failed")
}

// recordCacheOutcome counts one cache hit or miss per request. A request
// answered by a flight that found the entry on its own lookup is a hit.
func (e *Engine) recordCacheOutcome(hit bool) {
	if hit {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	if e.cache != nil {
		metrics.RecordCacheLookup(cacheType, hit)
	}
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("customer_id", req.CustomerID).
		Str("customer_type", string(req.CustomerType)).
		Logger()
}

// seasonalContext reads "month" and "season" overrides from the request
// context, defaulting to the clock.
func seasonalContext(reqCtx map[string]any, now time.Time) (time.Month, string) {
	month := now.Month()
	if m, ok := contextMonth(reqCtx["month"]); ok {
		month = m
	}

	season := algorithms.SeasonForMonth(month)
	if s, ok := reqCtx["season"].(string); ok && strings.TrimSpace(s) != "" {
		season = strings.ToLower(strings.TrimSpace(s))
	}
	return month, season
}

func contextMonth(v any) (time.Month, bool) {
	var n int
	switch m := v.(type) {
	case int:
		n = m
	case int64:
		n = int(m)
	case float64:
		n = int(m)
	case time.Month:
		n = int(m)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.stageMu.Lock()
	stageErrors := make(map[string]int64, len(e.stageErrors))
	for k, v := range e.stageErrors {
		stageErrors[k] = v
	}
	e.stageMu.Unlock()

	entries := 0
	if e.cache != nil {
		entries = e.cache.Len()
	}

	var breakers map[string]string
	if e.catalogGuard != nil {
		breakers = map[string]string{breakerCatalog: e.catalogGuard.State()}
		if e.ordersGuard != nil {
			breakers[breakerOrders] = e.ordersGuard.State()
		}
	}

	return Stats{
		Requests:        e.requestCount.Load(),
		CacheHits:       e.cacheHits.Load(),
		CacheMisses:     e.cacheMisses.Load(),
		Computed:        e.computedCount.Load(),
		Fallbacks:       e.fallbackCount.Load(),
		SharedResults:   e.sharedCount.Load(),
		StageErrors:     stageErrors,
		RetryableErrors: e.retryableCount.Load(),
		CacheEntries:    entries,
		Breakers:        breakers,
	}
}

// InvalidateCache drops every cached ranking and returns how many were removed.
func (e *Engine) InvalidateCache() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.Clear()
	metrics.UpdateCacheSize(cacheType, 0)
	e.logger.Info().Int("entries", n).Msg("recommendation cache invalidated")
	return n
}

// PurgeExpired removes expired cache entries and returns how many were removed.
func (e *Engine) PurgeExpired() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.PurgeExpired()
	if n > 0 {
		metrics.RecordCacheEvictions(cacheType, n)
	}
	metrics.UpdateCacheSize(cacheType, e.cache.Len())
	return n
}
