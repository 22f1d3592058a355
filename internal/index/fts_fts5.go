//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
			article_id UNINDEXED,
			title,
			body,
			keywords,
			tokenize = 'trigram'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id int, title, body string, keywords []string) error {
	_, _ = tx.Exec(`DELETE FROM articles_fts WHERE article_id = ?`, id)
	_, err := tx.Exec(`INSERT INTO articles_fts (article_id, title, body, keywords) VALUES (?, ?, ?, ?)`,
		id, title, body, strings.Join(keywords, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id int) error {
	if _, err := tx.Exec(`DELETE FROM articles_fts WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("index: delete fts: %w", err)
	}
	return nil
}

// matchQuery turns free text into an FTS5 query of quoted terms, so that
// operator characters in user input are matched literally.
func matchQuery(q string) string {
	fields := strings.Fields(q)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}

// Search performs an FTS5 full-text search and returns matching results with snippets.
func (db *DB) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := matchQuery(query)
	if q == "" {
		return []Hit{}, nil
	}
	rows, err := db.conn.Query(`
		SELECT article_id,
		       title,
		       snippet(articles_fts, 2, '<b>', '</b>', '...', 32)
		FROM articles_fts
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanHits(rows)
}
