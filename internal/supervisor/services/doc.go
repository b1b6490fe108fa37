// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

/*
Package services provides suture.Service wrappers for the daemon's long-running
components.

  - HTTPServerService: runs the ops *http.Server and shuts it down gracefully
    when the supervisor cancels its context
  - CacheJanitor: periodically purges expired recommendation cache entries

Each wrapper implements suture.Service and fmt.Stringer so restart events are
logged under a readable name. A wrapper returns ctx.Err() on shutdown and a
wrapped error on failure, leaving restart policy to the supervisor.
*/
package services
