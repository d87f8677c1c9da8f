// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package catalog

import (
	"strings"
	"time"

	qlerr "github.com/querylens/querylens/pkg/errors"
)

// Product is a single catalog record. Products are immutable after insert;
// the only destructive operation is a full store clear.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductInput carries the caller-supplied fields for an insert. The store
// assigns ID and CreatedAt.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// Validate checks that all required insert fields are present.
func (p ProductInput) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return qlerr.New(qlerr.CodeCatalogInsertInvalidInput, "product: name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return qlerr.New(qlerr.CodeCatalogInsertInvalidInput, "product: description is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return qlerr.New(qlerr.CodeCatalogInsertInvalidInput, "product: category is required")
	}
	if p.Price < 0 {
		return qlerr.Errorf(qlerr.CodeCatalogInsertInvalidInput, "product: price must be >= 0, got %v", p.Price)
	}
	return nil
}

// EmbeddingText is the blob handed to the embedding provider at insert time:
// name, description, and category space-joined in that order. Price is
// deliberately excluded.
func (p ProductInput) EmbeddingText() string {
	return p.Name + " " + p.Description + " " + p.Category
}

// MatchRank is the lexical engine's 3-tier ranking. Lower is better.
type MatchRank int

const (
	// RankName means the query matched the product name; a product matching
	// both name and category still ranks here.
	RankName MatchRank = 1
	// RankCategory means the query matched the category but not the name.
	RankCategory MatchRank = 2
	// RankDescription means the query matched only the description.
	RankDescription MatchRank = 3
)

// Match is one ranked search hit. Rank is set by the lexical engine,
// Similarity by the semantic engine; the unused field is zero.
type Match struct {
	Product
	Rank       MatchRank `json:"rank,omitempty"`
	Similarity float64   `json:"similarity,omitempty"`
}

// Stats is a point-in-time summary of one store.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalCategories int     `json:"total_categories"`
	AvgPrice        float64 `json:"avg_price"`
	DBType          string  `json:"db_type"`

	// Semantic store only; zero for the lexical store.
	TotalEmbeddings    int `json:"total_embeddings,omitempty"`
	EmbeddingDimension int `json:"embedding_dimension,omitempty"`
}
