package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultSearchLimit caps Search when no limit is given.
const DefaultSearchLimit = 20

// ArticleRow is a row of the articles table.
type ArticleRow struct {
	ID          int
	Title       string
	Checksum    string
	Keywords    []string
	PublishedAt string
	UpdatedAt   time.Time
}

// Hit is one full-text search result.
type Hit struct {
	ArticleID int    `json:"articleId"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
}

// UpsertArticle inserts or replaces an article and its FTS entry within a
// transaction. body is the searchable text.
func (db *DB) UpsertArticle(a ArticleRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	keywords := a.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kwJSON, _ := json.Marshal(keywords)

	_, err = tx.Exec(`
		INSERT INTO articles (id, title, checksum, keywords, body, published_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			checksum     = excluded.checksum,
			keywords     = excluded.keywords,
			body         = excluded.body,
			published_at = excluded.published_at,
			updated_at   = excluded.updated_at
	`, a.ID, a.Title, a.Checksum, string(kwJSON), body, a.PublishedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert article: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, a.ID, a.Title, body, keywords); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteArticle removes an article and its FTS entry.
func (db *DB) DeleteArticle(id int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := ftsDelete(tx, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM articles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("index: delete article: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum of an article, or "" if it is not
// indexed.
func (db *DB) GetChecksum(id int) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM articles WHERE id = ?`, id).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed article.
func (db *DB) AllChecksums() (map[int]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[int]string)
	for rows.Next() {
		var id int
		var cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}

// Count returns the number of indexed articles.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func scanHits(rows *sql.Rows) ([]Hit, error) {
	defer rows.Close()
	out := []Hit{}
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ArticleID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
