package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/checksum"
	"github.com/starford/devcase/internal/models"
)

// Sync brings the index up to date with a catalog snapshot:
//   - new/changed articles are upserted
//   - articles no longer in the catalog are deleted from the index
//
// Rows are compared by the checksum of their indexed text, so an unchanged
// article costs one map lookup.
func Sync(db ArticleIndex, cat *catalog.Catalog, logger *slog.Logger) error {
	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	live := make(map[int]struct{})
	upserted := 0
	for _, a := range cat.Articles() {
		live[a.ID] = struct{}{}

		body := Document(cat, a)
		cs := checksum.Sum([]byte(a.Title + "\n" + a.PublishedAt + "\n" + body))
		if checksums[a.ID] == cs {
			continue
		}
		row := ArticleRow{
			ID:          a.ID,
			Title:       a.Title,
			Checksum:    cs,
			Keywords:    a.Keywords,
			PublishedAt: a.PublishedAt,
			UpdatedAt:   now,
		}
		if err := db.UpsertArticle(row, body); err != nil {
			logger.Warn("sync: index failed", slog.Int("article_id", a.ID), slog.String("error", err.Error()))
			continue
		}
		upserted++
		logger.Debug("sync: indexed", slog.Int("article_id", a.ID))
	}

	removed := 0
	for id := range checksums {
		if _, ok := live[id]; ok {
			continue
		}
		if err := db.DeleteArticle(id); err != nil {
			logger.Warn("sync: delete failed", slog.Int("article_id", id), slog.String("error", err.Error()))
			continue
		}
		removed++
		logger.Debug("sync: removed stale", slog.Int("article_id", id))
	}

	logger.Info("sync: done",
		slog.String("catalog_version", cat.Version()),
		slog.Int("upserted", upserted),
		slog.Int("removed", removed))
	return nil
}

// Document returns the searchable text of an article: its description,
// keywords, tech stack, customer and the names of its company, system and
// category.
func Document(cat *catalog.Catalog, a models.Article) string {
	parts := []string{a.Description}
	parts = append(parts, a.Keywords...)
	parts = append(parts, a.TechStack...)
	if a.CustomerName != "" {
		parts = append(parts, a.CustomerName)
	}
	if co, ok := cat.CompanyOf(a); ok {
		parts = append(parts, co.Name)
	}
	if s, ok := cat.SystemByID(a.SystemID); ok {
		parts = append(parts, s.Name)
	}
	if c, ok := cat.CategoryOf(a); ok {
		parts = append(parts, c.Name)
	}
	return strings.Join(parts, "\n")
}
