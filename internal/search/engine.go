// Package search filters and sorts articles. Every function here is a pure
// transform over an immutable catalog snapshot; there is no incremental
// state, a new filter set is evaluated from scratch.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/models"
)

// Filters constrains a search. Filters are AND-combined; values within one
// filter are OR-combined. A zero Filters matches every article.
type Filters struct {
	// Keyword is matched case-insensitively against the title.
	Keyword string `json:"keyword,omitempty"`
	// Categories holds category ids. The article's category is derived
	// through its system.
	Categories []string `json:"categories,omitempty"`
	// Systems holds system ids.
	Systems []string `json:"systems,omitempty"`
	// ArticleTypes holds two-digit article type ids.
	ArticleTypes []string `json:"articleTypes,omitempty"`
	// Prefectures holds prefecture codes of the publishing company.
	Prefectures []string `json:"prefectures,omitempty"`
	// Company is matched case-insensitively against the company name.
	Company string `json:"company,omitempty"`
}

// IsZero reports whether f places no constraint.
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Keyword) == "" && strings.TrimSpace(f.Company) == "" &&
		len(f.Categories) == 0 && len(f.Systems) == 0 &&
		len(f.ArticleTypes) == 0 && len(f.Prefectures) == 0
}

// SortKey selects the result order. Both orders are descending.
type SortKey string

// Sort keys.
const (
	SortPublishedAt SortKey = "publishedAt"
	SortViewCount   SortKey = "viewCount"
)

// DefaultSort is used when no sort key is given.
const DefaultSort = SortPublishedAt

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	return k == SortPublishedAt || k == SortViewCount
}

// Engine evaluates searches against one catalog snapshot.
type Engine struct {
	cat *catalog.Catalog
}

// New creates an Engine over c.
func New(c *catalog.Catalog) *Engine {
	return &Engine{cat: c}
}

// Search returns the articles matching f ordered by sortBy. Records whose
// foreign keys cannot be resolved never match a filter that needs them. The
// result is never nil; input order breaks ties.
func (e *Engine) Search(articles []models.Article, f Filters, sortBy SortKey) []models.Article {
	m := newMatcher(e.cat, f)
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if m.match(a) {
			out = append(out, a)
		}
	}
	Sort(out, sortBy)
	return out
}

// All is Search over every article of the catalog.
func (e *Engine) All(f Filters, sortBy SortKey) []models.Article {
	return e.Search(e.cat.Articles(), f, sortBy)
}

// Sort orders articles in place by key, stable. Unknown keys fall back to
// DefaultSort.
func Sort(articles []models.Article, key SortKey) {
	switch key {
	case SortViewCount:
		slices.SortStableFunc(articles, func(x, y models.Article) int {
			return cmp.Compare(y.ViewCount, x.ViewCount)
		})
	default:
		slices.SortStableFunc(articles, func(x, y models.Article) int {
			return cmp.Compare(y.PublishedAt, x.PublishedAt)
		})
	}
}

type matcher struct {
	cat          *catalog.Catalog
	keyword      string
	company      string
	categories   []string
	systems      []string
	articleTypes []string
	prefectures  []string
}

func newMatcher(c *catalog.Catalog, f Filters) matcher {
	return matcher{
		cat:          c,
		keyword:      strings.ToLower(strings.TrimSpace(f.Keyword)),
		company:      strings.ToLower(strings.TrimSpace(f.Company)),
		categories:   f.Categories,
		systems:      f.Systems,
		articleTypes: f.ArticleTypes,
		prefectures:  f.Prefectures,
	}
}

func (m matcher) match(a models.Article) bool {
	if m.keyword != "" && !strings.Contains(strings.ToLower(a.Title), m.keyword) {
		return false
	}
	if len(m.categories) > 0 {
		id := m.cat.CategoryIDOf(a)
		if id == "" || !slices.Contains(m.categories, id) {
			return false
		}
	}
	if len(m.systems) > 0 && !slices.Contains(m.systems, a.SystemID) {
		return false
	}
	if len(m.articleTypes) > 0 && !slices.Contains(m.articleTypes, a.ArticleType.TypeID()) {
		return false
	}
	if m.company == "" && len(m.prefectures) == 0 {
		return true
	}
	co, ok := m.cat.CompanyOf(a)
	if !ok {
		return false
	}
	if m.company != "" && !strings.Contains(strings.ToLower(co.Name), m.company) {
		return false
	}
	if len(m.prefectures) > 0 && !slices.Contains(m.prefectures, co.PrefectureCode) {
		return false
	}
	return true
}
