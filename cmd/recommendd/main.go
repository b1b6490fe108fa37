// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

// Package main is the entry point for recommendd, the storefront
// recommendation daemon.
//
// recommendd hosts the recommendation engine next to its DuckDB catalog and
// order store and exposes an operational HTTP surface. Storefront backends
// embed the recommend package; the daemon exists for the shared cache
// janitor, metrics and health endpoints, and for local runs against a JSON
// fixture.
//
// # Startup
//
//  1. Configuration: koanf layers (defaults, config.yaml, environment)
//  2. Logging: zerolog from the logging section
//  3. Database: DuckDB open and schema bootstrap, optional fixture load
//  4. Engine: recommend.NewEngine over the database readers
//  5. Supervisor tree: cache janitor and ops HTTP server
//
// # Example
//
//	DUCKDB_PATH=:memory: FIXTURE_PATH=./testdata/demo.json LOG_FORMAT=console ./recommendd
//	curl localhost:9464/readyz
//
// # Signals
//
// SIGINT and SIGTERM cancel the supervisor tree. The ops server drains for
// SHUTDOWN_TIMEOUT and the database is checkpointed and closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/storefront-recs/internal/api"
	"github.com/tomtom215/storefront-recs/internal/config"
	"github.com/tomtom215/storefront-recs/internal/database"
	"github.com/tomtom215/storefront-recs/internal/logging"
	"github.com/tomtom215/storefront-recs/internal/metrics"
	"github.com/tomtom215/storefront-recs/internal/supervisor"
	"github.com/tomtom215/storefront-recs/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logging.Error().Err(err).Msg("recommendd exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("ops_addr", cfg.Server.Addr()).
		Msg("Starting recommendd")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.FixturePath != "" {
		if err := db.LoadFixture(ctx, cfg.Database.FixturePath); err != nil {
			return err
		}
	}

	if n, err := db.CountProducts(ctx); err == nil {
		logging.Info().Int("products", n).Msg("Catalog available")
	}

	engine, err := initEngine(&cfg.Recommend, db, db, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Recommend.Cache.Enabled {
		tree.AddMaintenanceService(services.NewCacheJanitor(
			engine, cfg.Recommend.Cache.JanitorInterval, logging.WithComponent("janitor"),
		))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(&cfg.Server, api.NewHandler(db, engine, version)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(
		"ops-http", server, cfg.Server.ShutdownTimeout, logging.WithComponent("ops"),
	))

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Interface("stats", engine.Stats()).Msg("recommendd stopped")
	return nil
}
