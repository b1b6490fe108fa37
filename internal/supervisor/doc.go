// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package supervisor runs the daemon's long-lived services under a suture v4
supervisor tree.

	root ("storefront-recs")
	├── maintenance-layer
	│   └── CacheJanitor
	└── api-layer
	    └── HTTPServerService (ops: /metrics, /healthz, /readyz)

The layers isolate failures: a janitor that keeps panicking backs off on its
own without taking the ops listener with it. The recommendation engine itself
is not a service; it is a library value shared by both layers.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog using the zerolog-backed slog adapter from the logging package.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(services.NewCacheJanitor(engine, interval, logger))
	tree.AddAPIService(services.NewHTTPServerService("ops-http", server, timeout, logger))
	err = tree.Serve(ctx)
*/
package supervisor
