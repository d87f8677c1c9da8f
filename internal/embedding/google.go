// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package embedding

import (
	"context"

	"google.golang.org/genai"

	qlerr "github.com/querylens/querylens/pkg/errors"
)

const defaultGoogleModel = "text-embedding-004"

// Google embeds text through the Gemini API, requesting the configured
// output dimensionality.
type Google struct {
	client *genai.Client
	model  string
	dims   int
}

// Compile-time interface check.
var _ Embedder = (*Google)(nil)

// NewGoogle creates a Gemini-backed embedder. Returns an error if the API
// key is missing.
func NewGoogle(cfg Config) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, qlerr.New(qlerr.CodeConfigValidateInvalidValue, "google embedder: missing api_key in config")
	}

	model := cfg.Model
	if model == "" {
		model = defaultGoogleModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, qlerr.Wrap(err, qlerr.CodeEmbeddingGenerateFailure, "creating gemini client", qlerr.FieldProvider("google"))
	}

	return &Google{client: client, model: model, dims: cfg.Dimensions}, nil
}

func (g *Google) Dimension() int { return g.dims }

func (g *Google) Model() string { return g.model }

func (g *Google) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: text}}},
	}
	dims := int32(g.dims)
	result, err := g.client.Models.EmbedContent(ctx, g.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, qlerr.Wrap(err, qlerr.CodeEmbeddingGenerateFailure, "calling gemini embeddings", qlerr.FieldProvider("google"))
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, qlerr.New(qlerr.CodeEmbeddingGenerateFailure, "gemini returned no embeddings", qlerr.FieldProvider("google"))
	}

	vec := result.Embeddings[0].Values
	if len(vec) != g.dims {
		return nil, qlerr.Errorf(qlerr.CodeEmbeddingDimensionMismatch, "gemini returned %d dimensions, want %d", len(vec), g.dims)
	}
	return vec, nil
}
