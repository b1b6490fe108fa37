// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package api serves the daemon's operational HTTP surface. It is not a
recommendation API: storefront backends embed the recommend package directly.

Routes:

	GET  /healthz           liveness, always 200 while the process runs
	GET  /readyz            200 when the database answers a ping, else 503
	GET  /metrics           Prometheus exposition
	GET  /stats             recommend.Stats as JSON
	POST /cache/invalidate  drops every cached recommendation

Every route runs behind request-id propagation, panic recovery, Prometheus
instrumentation and per-IP rate limiting (go-chi/httprate).
*/
package api
