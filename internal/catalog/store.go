// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package catalog defines the product catalog domain types and the store
// contracts both search engines implement. Each engine owns an independent
// store; the orchestrator keeps them in lockstep by inserting into both
// with identical field values.
package catalog

import (
	"context"
	"time"
)

// Store is the mutation and inspection surface shared by both engines.
// All operations are synchronous and fully committed before returning.
type Store interface {
	// Insert adds a product and returns its assigned id. IDs are
	// monotonically increasing in insertion order.
	Insert(ctx context.Context, in ProductInput) (int64, error)

	// Clear removes every product (and, for the semantic store, every
	// embedding). Clearing an empty store is a no-op.
	Clear(ctx context.Context) error

	// List returns products in insertion order, capped at limit.
	List(ctx context.Context, limit int) ([]Product, error)

	// Stats summarizes the store contents.
	Stats(ctx context.Context) (Stats, error)

	Close() error
}

// Searcher runs one retrieval strategy over its own store and reports
// wall-clock search time alongside the ranked hits.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Match, time.Duration, error)
}

// Engine is a store with a search strategy attached.
type Engine interface {
	Store
	Searcher
}
