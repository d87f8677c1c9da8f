// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package search pairs the two engines behind one orchestration surface:
// lockstep catalog mutation and side-by-side querying with independent
// timing. Results from the two engines are never merged or cross-ranked.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/querylens/querylens/internal/catalog"
	qlerr "github.com/querylens/querylens/pkg/errors"
)

// EngineReport is one engine's outcome for a query. When the engine
// failed, Err carries the message and the other fields are zero.
type EngineReport struct {
	Results []catalog.Match `json:"results"`
	Elapsed time.Duration   `json:"-"`
	Count   int             `json:"count"`
	Err     string          `json:"error,omitempty"`
}

// Comparison holds both engines' outcomes for the same query, un-merged.
type Comparison struct {
	Exact    EngineReport
	Semantic EngineReport
}

// SeedReport summarizes a catalog initialization run.
type SeedReport struct {
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
}

// Comparator owns the two independently stored engines. The stores are
// kept in sync only by this type inserting into both with identical
// field values; they share no state, so each engine's timing is measured
// in isolation.
type Comparator struct {
	exact    catalog.Engine
	semantic catalog.Engine
	logger   *slog.Logger
}

// New creates a Comparator over the two engines.
func New(exact, semantic catalog.Engine) *Comparator {
	return &Comparator{exact: exact, semantic: semantic, logger: slog.Default()}
}

// Exact returns the lexical engine.
func (c *Comparator) Exact() catalog.Engine { return c.exact }

// Semantic returns the semantic engine.
func (c *Comparator) Semantic() catalog.Engine { return c.semantic }

// Compare runs the same query through both engines and reports both
// outcomes. A failure in one engine does not suppress the other's result;
// the failing engine's report carries the error message instead. Compare
// itself fails only on an empty query.
func (c *Comparator) Compare(ctx context.Context, query string) (Comparison, error) {
	if err := validateQuery(query); err != nil {
		return Comparison{}, err
	}

	var cmp Comparison
	cmp.Exact = c.runEngine(ctx, c.exact, "exact", query)
	cmp.Semantic = c.runEngine(ctx, c.semantic, "semantic", query)
	return cmp, nil
}

func (c *Comparator) runEngine(ctx context.Context, engine catalog.Searcher, name, query string) EngineReport {
	results, elapsed, err := engine.Search(ctx, query, 0)
	if err != nil {
		c.logger.Warn("engine search failed", "engine", name, "query", query, "error", err)
		return EngineReport{Err: err.Error()}
	}
	return EngineReport{Results: results, Elapsed: elapsed, Count: len(results)}
}

// Initialize clears both stores and inserts the given products into both
// in lockstep with identical field values. A failing product is skipped
// in BOTH stores and counted, so the catalogs never drift apart.
func (c *Comparator) Initialize(ctx context.Context, products []catalog.ProductInput) (SeedReport, error) {
	if err := c.Clear(ctx); err != nil {
		return SeedReport{}, err
	}

	var report SeedReport
	for _, in := range products {
		if _, err := c.exact.Insert(ctx, in); err != nil {
			c.logger.Warn("seed insert failed", "engine", "exact", "product", in.Name, "error", err)
			report.Failed++
			continue
		}
		if _, err := c.semantic.Insert(ctx, in); err != nil {
			c.logger.Warn("seed insert failed", "engine", "semantic", "product", in.Name, "error", err)
			// The lexical copy stays until the next clear; there is no
			// single-product delete to back it out with.
			report.Failed++
			continue
		}
		report.Inserted++
	}

	c.logger.Info("catalog initialized", "inserted", report.Inserted, "failed", report.Failed)
	return report, nil
}

// Clear empties both stores.
func (c *Comparator) Clear(ctx context.Context) error {
	if err := c.exact.Clear(ctx); err != nil {
		return err
	}
	return c.semantic.Clear(ctx)
}

// StatsPair reads both stores' statistics.
func (c *Comparator) StatsPair(ctx context.Context) (exact, semantic catalog.Stats, err error) {
	exact, err = c.exact.Stats(ctx)
	if err != nil {
		return catalog.Stats{}, catalog.Stats{}, err
	}
	semantic, err = c.semantic.Stats(ctx)
	if err != nil {
		return catalog.Stats{}, catalog.Stats{}, err
	}
	return exact, semantic, nil
}

// validateQuery enforces the boundary rule: empty queries never reach an
// engine.
func validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return qlerr.New(qlerr.CodeSearchQueryInvalid, "query is required")
	}
	return nil
}
