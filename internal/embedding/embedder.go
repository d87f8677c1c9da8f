// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package embedding turns free text into fixed-dimension dense vectors.
// The rest of the system depends only on the Embedder contract, never on a
// particular provider's wire format or model internals.
package embedding

import (
	"context"
	"strings"

	qlerr "github.com/querylens/querylens/pkg/errors"
)

// DefaultDimensions matches the all-MiniLM-L6-v2 class of sentence
// embedding models the demo was designed around.
const DefaultDimensions = 384

// Embedder maps free text to a fixed-dimension dense vector. Implementations
// must be safe for concurrent use; every call is stateless.
type Embedder interface {
	// Embed returns a vector of exactly Dimension() components. Empty or
	// whitespace-only text is an error.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the dimensionality of produced vectors.
	Dimension() int

	// Model returns the model identifier in use.
	Model() string
}

// Config selects and parameterizes an embedding provider.
type Config struct {
	Provider   string // "local", "openai", or "google"
	Model      string // provider-specific model id; empty = provider default
	Dimensions int    // 0 = DefaultDimensions
	APIKey     string
}

// New builds the Embedder named by cfg.Provider.
func New(cfg Config) (Embedder, error) {
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.Dimensions < 0 {
		return nil, qlerr.Errorf(qlerr.CodeEmbeddingDimensionMismatch, "embedding dimensions must be > 0, got %d", cfg.Dimensions)
	}

	switch cfg.Provider {
	case "", "local":
		return NewLocal(cfg.Dimensions), nil
	case "openai":
		return NewOpenAI(cfg)
	case "google":
		return NewGoogle(cfg)
	default:
		return nil, qlerr.Errorf(qlerr.CodeEmbeddingProviderUnsupported, "unsupported embedding provider: %q", cfg.Provider)
	}
}

// validateText rejects inputs no provider can embed meaningfully.
func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return qlerr.New(qlerr.CodeEmbeddingInputInvalid, "embedding: text is empty")
	}
	return nil
}
