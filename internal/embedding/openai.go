// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package embedding

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	qlerr "github.com/querylens/querylens/pkg/errors"
)

const defaultOpenAIModel = "text-embedding-3-small"

// OpenAI embeds text through the OpenAI embeddings API, requesting vectors
// truncated to the configured dimensionality.
type OpenAI struct {
	client openaisdk.Client
	model  string
	dims   int
}

// Compile-time interface check.
var _ Embedder = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI-backed embedder. Returns an error if the API
// key is missing.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, qlerr.New(qlerr.CodeConfigValidateInvalidValue, "openai embedder: missing api_key in config")
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	client := openaisdk.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAI{client: client, model: model, dims: cfg.Dimensions}, nil
}

func (o *OpenAI) Dimension() int { return o.dims }

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	resp, err := o.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input:      openaisdk.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
		Model:      openaisdk.EmbeddingModel(o.model),
		Dimensions: openaisdk.Int(int64(o.dims)),
	})
	if err != nil {
		return nil, qlerr.Wrap(err, qlerr.CodeEmbeddingGenerateFailure, "calling openai embeddings", qlerr.FieldProvider("openai"))
	}
	if len(resp.Data) == 0 {
		return nil, qlerr.New(qlerr.CodeEmbeddingGenerateFailure, "openai returned no embeddings", qlerr.FieldProvider("openai"))
	}

	raw := resp.Data[0].Embedding
	if len(raw) != o.dims {
		return nil, qlerr.Errorf(qlerr.CodeEmbeddingDimensionMismatch, "openai returned %d dimensions, want %d", len(raw), o.dims)
	}

	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}
	return vec, nil
}
