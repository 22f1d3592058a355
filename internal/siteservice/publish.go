package siteservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/devcase/internal/apperr"
	"github.com/starford/devcase/internal/index"
	"github.com/starford/devcase/internal/publish"
	"github.com/starford/devcase/internal/search"
)

// FullText searches article bodies through the index. Without an index it
// degrades to the engine's keyword filter.
func (s *Service) FullText(_ context.Context, q string, limit int) ([]FullTextHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty full-text query", apperr.ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = index.DefaultSearchLimit
	}
	v := s.view()

	if s.db == nil {
		found := v.eng.All(search.Filters{Keyword: q}, search.DefaultSort)
		if len(found) > limit {
			found = found[:limit]
		}
		out := make([]FullTextHit, len(found))
		for i, a := range found {
			out[i] = FullTextHit{ArticleItem: v.item(a), Snippet: a.Description}
		}
		return out, nil
	}

	hits, err := s.db.Search(q, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	out := make([]FullTextHit, 0, len(hits))
	for _, h := range hits {
		// The index can lag a reload by one sync; drop rows the live
		// catalog no longer has.
		a, ok := v.cat.ArticleByID(h.ArticleID)
		if !ok {
			continue
		}
		out = append(out, FullTextHit{ArticleItem: v.item(a), Snippet: h.Snippet})
	}
	return out, nil
}

// Sitemap renders sitemap.xml for the live catalog and returns the report of
// fallbacks and skipped records alongside it.
func (s *Service) Sitemap(_ context.Context) ([]byte, publish.Report, error) {
	rep := s.view().gen.Generate()
	var buf bytes.Buffer
	if err := publish.WriteSitemap(&buf, rep.Entries); err != nil {
		return nil, rep, err
	}
	if n := len(rep.Fallbacks) + len(rep.Skipped); n > 0 {
		s.logger.Warn("sitemap generated with degraded entries",
			slog.Int("fallbacks", len(rep.Fallbacks)),
			slog.Int("skipped", len(rep.Skipped)))
	}
	return buf.Bytes(), rep, nil
}

// Robots renders robots.txt.
func (s *Service) Robots() string {
	return publish.Robots(s.opts.BaseURL)
}
