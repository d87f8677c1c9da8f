// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/querylens/querylens/internal/catalog"
	"github.com/querylens/querylens/internal/embedding"
	"github.com/querylens/querylens/internal/store/sqlite"
	"github.com/stretchr/testify/require"
)

// testDir creates a temp directory for a test with automatic cleanup.
func testDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "querylens-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(testDir(t), name+".db")
}

func newLexical(t *testing.T, name string) *sqlite.LexicalStore {
	t.Helper()
	ls, err := sqlite.NewLexicalStore(testDBPath(t, name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ls.Close() })
	return ls
}

func newSemantic(t *testing.T, name string) *sqlite.SemanticStore {
	t.Helper()
	ss, err := sqlite.NewSemanticStore(testDBPath(t, name), embedding.NewLocal(embedding.DefaultDimensions))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })
	return ss
}

// testProducts is a small fixture catalog exercising all three rank tiers.
var testProducts = []catalog.ProductInput{
	{Name: "Wireless Bluetooth Headphones", Description: "High-quality over-ear headphones with active noise cancellation and 30-hour battery life", Category: "Electronics", Price: 149.99},
	{Name: "LED Desk Lamp", Description: "Adjustable brightness desk lamp with USB charging port and touch controls", Category: "Electronics", Price: 45.99},
	{Name: "Yoga Mat Premium", Description: "Non-slip exercise mat with extra cushioning for yoga, pilates, and floor exercises", Category: "Sports", Price: 39.99},
	{Name: "Coffee Maker", Description: "Programmable drip coffee maker with thermal carafe and auto-shutoff feature", Category: "Kitchen", Price: 79.99},
	{Name: "Dining Table", Description: "Solid wood dining table seats 6 people with elegant finish", Category: "Furniture", Price: 499.99},
}

func seedStore(t *testing.T, ctx context.Context, store catalog.Store) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(testProducts))
	for _, in := range testProducts {
		id, err := store.Insert(ctx, in)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}
