// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Local is a deterministic feature-hashing embedder: lowercased word and
// character trigram features are hashed into a fixed number of buckets and
// the bucket counts are L2-normalized. Texts sharing vocabulary land in
// overlapping buckets, so cosine similarity tracks surface overlap well
// enough for demos and tests. No network, no model weights, stable across
// runs and platforms.
type Local struct {
	dims int
}

// Compile-time interface check.
var _ Embedder = (*Local)(nil)

// NewLocal creates a Local embedder producing dims-component vectors.
func NewLocal(dims int) *Local {
	return &Local{dims: dims}
}

func (l *Local) Dimension() int { return l.dims }

func (l *Local) Model() string { return "feature-hash" }

// Embed hashes the text's features into a normalized vector.
func (l *Local) Embed(_ context.Context, text string) ([]float32, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	vec := make([]float32, l.dims)
	for _, tok := range tokenize(text) {
		l.bump(vec, tok)
		// Character trigrams give partial-word overlap between related
		// tokens ("running" vs "runner").
		runes := []rune(tok)
		for i := 0; i+3 <= len(runes); i++ {
			l.bump(vec, "tri:"+string(runes[i:i+3]))
		}
	}

	normalize(vec)
	return vec, nil
}

// bump increments the bucket for one feature, with a second hash choosing
// the sign so unrelated features cancel rather than accumulate.
func (l *Local) bump(vec []float32, feature string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := int(sum % uint64(l.dims))
	if (sum>>63)&1 == 1 {
		vec[bucket]--
	} else {
		vec[bucket]++
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
