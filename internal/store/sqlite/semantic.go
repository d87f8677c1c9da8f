// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/querylens/querylens/internal/catalog"
	"github.com/querylens/querylens/internal/embedding"
	qlerr "github.com/querylens/querylens/pkg/errors"
)

func init() {
	sqlite_vec.Auto()
}

// Compile-time interface check.
var _ catalog.Engine = (*SemanticStore)(nil)

// SemanticStore is the semantic engine: each product row has exactly one
// embedding row, written in the same transaction so a failed embedding
// write never leaves an orphan product. Search is an exhaustive cosine
// scan over every stored embedding; there is no index structure, which is
// the right trade for a catalog of hundreds to low thousands of items.
type SemanticStore struct {
	db       *sql.DB
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewSemanticStore opens (or creates) a SQLite database at dbPath and
// initialises the products and embeddings tables.
func NewSemanticStore(dbPath string, embedder embedding.Embedder) (*SemanticStore, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrateSemantic(db); err != nil {
		_ = db.Close()
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "migrating semantic tables: %w", err)
	}

	return &SemanticStore{db: db, embedder: embedder, logger: slog.Default()}, nil
}

func migrateSemantic(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       REAL NOT NULL,
	created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS embeddings (
	product_id INTEGER PRIMARY KEY,
	embedding  BLOB NOT NULL,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);
`
	_, err := db.Exec(ddl)
	return err
}

// Close closes the underlying database connection.
func (s *SemanticStore) Close() error {
	return s.db.Close()
}

// Insert embeds the product text and writes the product row and its
// embedding in one transaction.
func (s *SemanticStore) Insert(ctx context.Context, in catalog.ProductInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	vec, err := s.embedder.Embed(ctx, in.EmbeddingText())
	if err != nil {
		return 0, qlerr.Wrap(err, qlerr.CodeEmbeddingGenerateFailure, "embedding product text")
	}
	if len(vec) != s.embedder.Dimension() {
		return 0, qlerr.Errorf(qlerr.CodeEmbeddingDimensionMismatch, "embedder produced %d dimensions, want %d", len(vec), s.embedder.Dimension())
	}

	blob, err := sqlite_vec.SerializeFloat32(vec)
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeEmbeddingGenerateFailure, "serializing embedding: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO products (name, description, category, price) VALUES (?, ?, ?, ?)`,
		in.Name, in.Description, in.Category, in.Price)
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "reading inserted id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO embeddings (product_id, embedding) VALUES (?, ?)`, id, blob); err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "inserting embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "committing product insert: %w", err)
	}
	return id, nil
}

// Clear removes all products and, via cascade, all embeddings.
func (s *SemanticStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM embeddings`); err != nil {
		return qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "clearing embeddings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "clearing products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "committing clear: %w", err)
	}
	return nil
}

// List returns products in insertion order, capped at limit.
func (s *SemanticStore) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 100
	}

	const q = `SELECT id, name, description, category, price, created_at FROM products ORDER BY id ASC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "listing products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// Stats summarizes the store, including embedding coverage.
func (s *SemanticStore) Stats(ctx context.Context) (catalog.Stats, error) {
	stats := catalog.Stats{
		DBType:             "Vector Database",
		EmbeddingDimension: s.embedder.Dimension(),
	}

	const q = `SELECT COUNT(*), COUNT(DISTINCT category), ROUND(COALESCE(AVG(price), 0), 2) FROM products`
	if err := s.db.QueryRowContext(ctx, q).Scan(&stats.TotalProducts, &stats.TotalCategories, &stats.AvgPrice); err != nil {
		return catalog.Stats{}, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "reading product stats: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&stats.TotalEmbeddings); err != nil {
		return catalog.Stats{}, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "counting embeddings: %w", err)
	}
	return stats, nil
}

// Search embeds the query and ranks every stored product by cosine
// similarity to it. The scan visits all rows; similarity descending, id
// ascending on exact ties. Similarities are rounded to 4 decimal places
// for presentation.
func (s *SemanticStore) Search(ctx context.Context, query string, limit int) ([]catalog.Match, time.Duration, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	start := time.Now()

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, 0, qlerr.Wrap(err, qlerr.CodeEmbeddingGenerateFailure, "embedding query", qlerr.FieldQuery(query))
	}

	const q = `
SELECT p.id, p.name, p.description, p.category, p.price, p.created_at, e.embedding
FROM products p
JOIN embeddings e ON p.id = e.product_id
ORDER BY p.id ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "reading embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []catalog.Match
	for rows.Next() {
		var m catalog.Match
		var created string
		var blob []byte
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &created, &blob); err != nil {
			return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "scanning embedding row: %w", err)
		}
		m.CreatedAt = parseTime(created)

		stored, err := deserializeFloat32(blob)
		if err != nil {
			return nil, 0, qlerr.Wrap(err, qlerr.CodeCatalogDatabaseFailure, "decoding stored embedding", qlerr.FieldProductID(m.ID))
		}

		m.Similarity = cosineSimilarity(queryVec, stored)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "iterating embedding rows: %w", err)
	}

	// Rows arrive id-ascending, so a stable sort on similarity alone
	// keeps id order on exact ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	for i := range matches {
		matches[i].Similarity = math.Round(matches[i].Similarity*10000) / 10000
	}

	elapsed := time.Since(start)
	s.logger.Debug("semantic search complete", "query", query, "matches", len(matches), "elapsed", elapsed)
	return matches, elapsed, nil
}

// cosineSimilarity is dot(q, v) / (|q| * |v|), accumulated in float64.
// A zero-norm vector yields 0 rather than NaN.
func cosineSimilarity(q, v []float32) float64 {
	n := len(q)
	if len(v) < n {
		n = len(v)
	}

	var dot, normQ, normV float64
	for i := 0; i < n; i++ {
		dot += float64(q[i]) * float64(v[i])
		normQ += float64(q[i]) * float64(q[i])
		normV += float64(v[i]) * float64(v[i])
	}
	if normQ == 0 || normV == 0 {
		return 0
	}
	return dot / (math.Sqrt(normQ) * math.Sqrt(normV))
}

// deserializeFloat32 decodes the little-endian float32 blob format
// produced by sqlite_vec.SerializeFloat32.
func deserializeFloat32(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}

	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
