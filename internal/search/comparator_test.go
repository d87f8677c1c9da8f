// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package search_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/querylens/querylens/internal/catalog"
	"github.com/querylens/querylens/internal/embedding"
	"github.com/querylens/querylens/internal/search"
	"github.com/querylens/querylens/internal/seed"
	"github.com/querylens/querylens/internal/store/sqlite"
	qlerr "github.com/querylens/querylens/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComparator(t *testing.T) *search.Comparator {
	t.Helper()
	dir, err := os.MkdirTemp("", "querylens-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	exact, err := sqlite.NewLexicalStore(filepath.Join(dir, "traditional.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = exact.Close() })

	semantic, err := sqlite.NewSemanticStore(filepath.Join(dir, "vector.db"), embedding.NewLocal(embedding.DefaultDimensions))
	require.NoError(t, err)
	t.Cleanup(func() { _ = semantic.Close() })

	return search.New(exact, semantic)
}

func TestInitializeSeedsBothStores(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)

	report, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)
	assert.Equal(t, 25, report.Inserted)
	assert.Equal(t, 0, report.Failed)

	exact, semantic, err := cmp.StatsPair(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, exact.TotalProducts)
	assert.Equal(t, 25, semantic.TotalProducts)
	assert.Equal(t, 25, semantic.TotalEmbeddings)
	assert.Equal(t, exact.AvgPrice, semantic.AvgPrice)
	assert.Equal(t, exact.TotalCategories, semantic.TotalCategories)
}

func TestInitializeIsRepeatable(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)

	_, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)
	report, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)
	assert.Equal(t, 25, report.Inserted)

	exact, _, err := cmp.StatsPair(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, exact.TotalProducts, "re-initialize must not duplicate the catalog")
}

func TestInitializeContinuesOnBadProduct(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)

	products := []catalog.ProductInput{
		{Name: "Good One", Description: "fine", Category: "Misc", Price: 1},
		{Description: "missing name", Category: "Misc", Price: 1},
		{Name: "Good Two", Description: "also fine", Category: "Misc", Price: 2},
	}

	report, err := cmp.Initialize(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Failed)
}

func TestCompareReturnsBothEngines(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)
	_, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)

	result, err := cmp.Compare(ctx, "headphones")
	require.NoError(t, err)

	// Lexical: name match at rank 1.
	require.NotEmpty(t, result.Exact.Results)
	assert.Empty(t, result.Exact.Err)
	assert.Equal(t, "Wireless Bluetooth Headphones", result.Exact.Results[0].Name)
	assert.Equal(t, catalog.RankName, result.Exact.Results[0].Rank)
	assert.Equal(t, len(result.Exact.Results), result.Exact.Count)

	// Semantic: full ranking with similarities, never merged with exact.
	require.NotEmpty(t, result.Semantic.Results)
	assert.Empty(t, result.Semantic.Err)
	assert.Equal(t, len(result.Semantic.Results), result.Semantic.Count)
	assert.NotZero(t, result.Semantic.Results[0].Similarity)
}

func TestCompareIdempotentRanking(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)
	_, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)

	first, err := cmp.Compare(ctx, "comfortable chair for working from home")
	require.NoError(t, err)
	second, err := cmp.Compare(ctx, "comfortable chair for working from home")
	require.NoError(t, err)

	require.Equal(t, len(first.Exact.Results), len(second.Exact.Results))
	for i := range first.Exact.Results {
		assert.Equal(t, first.Exact.Results[i].ID, second.Exact.Results[i].ID)
	}
	require.Equal(t, len(first.Semantic.Results), len(second.Semantic.Results))
	for i := range first.Semantic.Results {
		assert.Equal(t, first.Semantic.Results[i].ID, second.Semantic.Results[i].ID)
		assert.Equal(t, first.Semantic.Results[i].Similarity, second.Semantic.Results[i].Similarity)
	}
}

func TestCompareRejectsEmptyQuery(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)

	for _, query := range []string{"", "   "} {
		_, err := cmp.Compare(ctx, query)
		require.Error(t, err)
		assert.True(t, qlerr.HasCode(err, qlerr.CodeSearchQueryInvalid))
	}
}

func TestCompareCapturesEngineFailureIndependently(t *testing.T) {
	ctx := context.Background()
	cmp := search.New(failingEngine{}, workingEngine{})

	result, err := cmp.Compare(ctx, "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Exact.Err)
	assert.Empty(t, result.Semantic.Err)
	assert.Equal(t, 1, result.Semantic.Count)
}

func TestClearEmptiesBothStores(t *testing.T) {
	ctx := context.Background()
	cmp := newComparator(t)
	_, err := cmp.Initialize(ctx, seed.Products())
	require.NoError(t, err)

	require.NoError(t, cmp.Clear(ctx))

	exact, semantic, err := cmp.StatsPair(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, exact.TotalProducts)
	assert.Equal(t, 0.0, exact.AvgPrice)
	assert.Equal(t, 0, semantic.TotalProducts)
	assert.Equal(t, 0, semantic.TotalEmbeddings)
}

// --- test doubles for per-engine failure capture ---

type failingEngine struct{ workingEngine }

func (failingEngine) Search(context.Context, string, int) ([]catalog.Match, time.Duration, error) {
	return nil, 0, qlerr.New(qlerr.CodeSearchEngineFailure, "engine exploded")
}

type workingEngine struct{}

func (workingEngine) Search(context.Context, string, int) ([]catalog.Match, time.Duration, error) {
	return []catalog.Match{{Product: catalog.Product{ID: 1, Name: "stub"}}}, time.Millisecond, nil
}

func (workingEngine) Insert(context.Context, catalog.ProductInput) (int64, error) { return 1, nil }
func (workingEngine) Clear(context.Context) error                                 { return nil }
func (workingEngine) List(context.Context, int) ([]catalog.Product, error)        { return nil, nil }
func (workingEngine) Stats(context.Context) (catalog.Stats, error)                { return catalog.Stats{}, nil }
func (workingEngine) Close() error                                                { return nil }
