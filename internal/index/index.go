package index

// ArticleIndex is the full-text index as seen by its consumers.
type ArticleIndex interface {
	UpsertArticle(a ArticleRow, body string) error
	DeleteArticle(id int) error
	GetChecksum(id int) (string, error)
	AllChecksums() (map[int]string, error)
	Count() (int, error)
	Search(query string, limit int) ([]Hit, error)
	Close() error
}

// Verify *DB satisfies ArticleIndex at compile time.
var _ ArticleIndex = (*DB)(nil)
