// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package main

import (
	"os"
	"path/filepath"

	"github.com/querylens/querylens/internal/config"
	"github.com/querylens/querylens/internal/embedding"
	"github.com/querylens/querylens/internal/search"
	"github.com/querylens/querylens/internal/store/sqlite"
	qlerr "github.com/querylens/querylens/pkg/errors"
)

// Engines holds both wired stores and manages their lifecycle.
type Engines struct {
	Exact      *sqlite.LexicalStore
	Semantic   *sqlite.SemanticStore
	Comparator *search.Comparator
}

// WireEngines creates the embedder and both stores under the data
// directory: traditional.db for the lexical engine, vector.db for the
// semantic engine. The two databases are deliberately separate files so
// neither engine's timing is affected by the other.
func WireEngines(cfg *config.Config) (*Engines, error) {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return nil, qlerr.Errorf(qlerr.CodeServerStartFailure, "creating data directory: %w", err)
	}

	embedder, err := embedding.New(embedding.Config{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		APIKey:     cfg.Embedding.APIKey,
	})
	if err != nil {
		return nil, err
	}

	exact, err := sqlite.NewLexicalStore(filepath.Join(cfg.Storage.DataDir, "traditional.db"))
	if err != nil {
		return nil, err
	}

	semantic, err := sqlite.NewSemanticStore(filepath.Join(cfg.Storage.DataDir, "vector.db"), embedder)
	if err != nil {
		_ = exact.Close()
		return nil, err
	}

	return &Engines{
		Exact:      exact,
		Semantic:   semantic,
		Comparator: search.New(exact, semantic),
	}, nil
}

// Close closes both stores.
func (e *Engines) Close() error {
	return qlerr.Join(e.Exact.Close(), e.Semantic.Close())
}
