// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	qlerr "github.com/querylens/querylens/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncludesCodeAndFields(t *testing.T) {
	err := qlerr.New(
		qlerr.CodeCatalogInsertInvalidInput,
		"missing required field",
		qlerr.FieldProductID(42),
		qlerr.Field("field", "name"),
	)

	require.Error(t, err)
	assert.Equal(t, qlerr.CodeCatalogInsertInvalidInput, qlerr.CodeOf(err))
	assert.True(t, qlerr.HasCode(err, qlerr.CodeCatalogInsertInvalidInput))

	fields := qlerr.FieldsOf(err)
	assert.Equal(t, int64(42), fields["product_id"])
	assert.Equal(t, "name", fields["field"])
}

func TestErrorfWrapsInnerError(t *testing.T) {
	inner := stderrors.New("disk full")
	err := qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "write failed: %w", inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, qlerr.CodeCatalogDatabaseFailure, qlerr.CodeOf(err))
}

func TestWrapPreservesChainAndCode(t *testing.T) {
	root := stderrors.New("connection reset")
	err := qlerr.Wrap(
		root,
		qlerr.CodeEmbeddingGenerateFailure,
		"embedding query",
		qlerr.FieldProvider("openai"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, qlerr.CodeEmbeddingGenerateFailure, qlerr.CodeOf(err))
	assert.True(t, qlerr.IsEmbeddingFailure(err))
	assert.Equal(t, "openai", qlerr.FieldsOf(err)["provider"])
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, qlerr.Wrap(nil, qlerr.CodeServerInternalFailure, "ignored"))
	assert.NoError(t, qlerr.Wrapf(nil, qlerr.CodeServerInternalFailure, "ignored %s", "arg"))
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"invalid input query", qlerr.New(qlerr.CodeSearchQueryInvalid, "empty query"), qlerr.IsInvalidInput, true},
		{"invalid insert field", qlerr.New(qlerr.CodeCatalogInsertInvalidInput, "missing name"), qlerr.IsInvalidInput, true},
		{"dimension mismatch", qlerr.New(qlerr.CodeEmbeddingDimensionMismatch, "got 3 want 384"), qlerr.IsInvalidInput, true},
		{"not found", qlerr.New(qlerr.CodeCatalogProductNotFound, "no such product"), qlerr.IsNotFound, true},
		{"storage failure", qlerr.New(qlerr.CodeCatalogDatabaseFailure, "locked"), qlerr.IsStorageFailure, true},
		{"storage failure not invalid", qlerr.New(qlerr.CodeCatalogDatabaseFailure, "locked"), qlerr.IsInvalidInput, false},
		{"embedding failure", qlerr.New(qlerr.CodeEmbeddingGenerateFailure, "provider down"), qlerr.IsEmbeddingFailure, true},
		{"plain error has no code", stderrors.New("plain"), qlerr.IsInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, qlerr.HTTPStatus(qlerr.New(qlerr.CodeSearchQueryInvalid, "empty")))
	assert.Equal(t, http.StatusNotFound, qlerr.HTTPStatus(qlerr.New(qlerr.CodeCatalogProductNotFound, "missing")))
	assert.Equal(t, http.StatusInternalServerError, qlerr.HTTPStatus(qlerr.New(qlerr.CodeCatalogDatabaseFailure, "locked")))
	assert.Equal(t, http.StatusInternalServerError, qlerr.HTTPStatus(stderrors.New("plain")))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, qlerr.Code(""), qlerr.CodeOf(stderrors.New("plain")))
	assert.Equal(t, qlerr.Code(""), qlerr.CodeOf(nil))
}

func TestJoinCombinesErrors(t *testing.T) {
	a := stderrors.New("first")
	b := stderrors.New("second")
	err := qlerr.Join(a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, a)
	assert.ErrorIs(t, err, b)
	assert.Equal(t, qlerr.CodeServerInternalFailure, qlerr.CodeOf(err))
}
