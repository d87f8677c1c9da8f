// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package catalog_test

import (
	"testing"

	"github.com/querylens/querylens/internal/catalog"
	qlerr "github.com/querylens/querylens/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInputValidate(t *testing.T) {
	valid := catalog.ProductInput{Name: "Blender", Description: "High-speed blender", Category: "Kitchen", Price: 89.99}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*catalog.ProductInput)
	}{
		{"empty name", func(p *catalog.ProductInput) { p.Name = "" }},
		{"whitespace name", func(p *catalog.ProductInput) { p.Name = "   " }},
		{"empty description", func(p *catalog.ProductInput) { p.Description = "" }},
		{"empty category", func(p *catalog.ProductInput) { p.Category = "" }},
		{"negative price", func(p *catalog.ProductInput) { p.Price = -0.01 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.True(t, qlerr.HasCode(err, qlerr.CodeCatalogInsertInvalidInput))
		})
	}

	// Free products are allowed; only negative prices are rejected.
	free := valid
	free.Price = 0
	assert.NoError(t, free.Validate())
}

func TestEmbeddingTextOrderAndExclusions(t *testing.T) {
	in := catalog.ProductInput{Name: "Air Fryer", Description: "Digital air fryer", Category: "Kitchen", Price: 109.99}
	text := in.EmbeddingText()

	assert.Equal(t, "Air Fryer Digital air fryer Kitchen", text)
	assert.NotContains(t, text, "109.99", "price never reaches the embedder")
}
