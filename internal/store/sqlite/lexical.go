// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package sqlite implements both catalog engines on top of SQLite: a
// lexical store using LIKE substring matching and a semantic store using
// stored embeddings with a brute-force cosine scan. Each store owns its
// own database file so the two engines never share state.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/querylens/querylens/internal/catalog"
	qlerr "github.com/querylens/querylens/pkg/errors"
)

// defaultSearchLimit caps result sets when the caller does not specify one.
const defaultSearchLimit = 20

// Compile-time interface check.
var _ catalog.Engine = (*LexicalStore)(nil)

// LexicalStore is the exact-match engine: case-insensitive substring search
// over name, description, and category with tiered ranking.
type LexicalStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLexicalStore opens (or creates) a SQLite database at dbPath and
// initialises the products table with name/category indexes.
func NewLexicalStore(dbPath string) (*LexicalStore, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrateLexical(db); err != nil {
		_ = db.Close()
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "migrating products table: %w", err)
	}

	return &LexicalStore{db: db, logger: slog.Default()}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "pinging sqlite db: %w", err)
	}

	return db, nil
}

func migrateLexical(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       REAL NOT NULL,
	created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
	_, err := db.Exec(ddl)
	return err
}

// Close closes the underlying database connection.
func (l *LexicalStore) Close() error {
	return l.db.Close()
}

// Insert adds a product and returns its assigned id.
func (l *LexicalStore) Insert(ctx context.Context, in catalog.ProductInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	const q = `INSERT INTO products (name, description, category, price) VALUES (?, ?, ?, ?)`
	res, err := l.db.ExecContext(ctx, q, in.Name, in.Description, in.Category, in.Price)
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "reading inserted id: %w", err)
	}
	return id, nil
}

// Clear removes all products. Clearing an empty store is a no-op.
func (l *LexicalStore) Clear(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "clearing products: %w", err)
	}
	return nil
}

// List returns products in insertion order, capped at limit.
func (l *LexicalStore) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 100
	}

	const q = `SELECT id, name, description, category, price, created_at FROM products ORDER BY id ASC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "listing products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// Stats summarizes the store contents.
func (l *LexicalStore) Stats(ctx context.Context) (catalog.Stats, error) {
	stats := catalog.Stats{DBType: "Traditional SQL"}

	const q = `SELECT COUNT(*), COUNT(DISTINCT category), ROUND(COALESCE(AVG(price), 0), 2) FROM products`
	if err := l.db.QueryRowContext(ctx, q).Scan(&stats.TotalProducts, &stats.TotalCategories, &stats.AvgPrice); err != nil {
		return catalog.Stats{}, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "reading product stats: %w", err)
	}
	return stats, nil
}

// Search treats query as a case-insensitive substring pattern over name,
// description, and category. Matches rank name=1, category=2, description=3;
// a product matching both name and category ranks 1 because the first
// matching CASE arm wins. Ties break by id ascending so results are
// reproducible across runs.
func (l *LexicalStore) Search(ctx context.Context, query string, limit int) ([]catalog.Match, time.Duration, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	start := time.Now()
	pattern := "%" + query + "%"

	const q = `
SELECT id, name, description, category, price, created_at,
	CASE
		WHEN name LIKE ? THEN 1
		WHEN category LIKE ? THEN 2
		ELSE 3
	END AS rank
FROM products
WHERE name LIKE ? OR description LIKE ? OR category LIKE ?
ORDER BY rank ASC, id ASC
LIMIT ?`

	rows, err := l.db.QueryContext(ctx, q, pattern, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "searching products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []catalog.Match
	for rows.Next() {
		var m catalog.Match
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &created, &m.Rank); err != nil {
			return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "scanning search row: %w", err)
		}
		m.CreatedAt = parseTime(created)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "iterating search rows: %w", err)
	}

	elapsed := time.Since(start)
	l.logger.Debug("lexical search complete", "query", query, "matches", len(matches), "elapsed", elapsed)
	return matches, elapsed, nil
}

func scanProducts(rows *sql.Rows) ([]catalog.Product, error) {
	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		var created string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &created); err != nil {
			return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "scanning product row: %w", err)
		}
		p.CreatedAt = parseTime(created)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, qlerr.Errorf(qlerr.CodeCatalogDatabaseFailure, "iterating product rows: %w", err)
	}
	return products, nil
}

// parseTime handles the timestamp formats sqlite emits for
// CURRENT_TIMESTAMP columns.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
