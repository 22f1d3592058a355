//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE on articles.body.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ int, _, _ string, _ []string) error {
	// Body is already stored in the articles table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ int) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Hit{}, nil
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, title, substr(body, 1, 120)
		FROM articles
		WHERE title LIKE ? OR body LIKE ? OR keywords LIKE ?
		ORDER BY published_at DESC, id
		LIMIT ?
	`, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanHits(rows)
}
