// Storefront Recs - Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storefront-recs

// Package models defines the catalog and order snapshots shared by the
// recommendation engine, its storage adapters and the similarity functions.
//
// All values are read-only snapshots: the engine never mutates a Product or
// OrderLine it received from a collaborator.
package models
