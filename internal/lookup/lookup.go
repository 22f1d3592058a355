// Package lookup joins articles to their related master records and computes
// aggregates (counts, rankings, recommendations) over the catalog.
package lookup

import (
	"cmp"
	"slices"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/models"
)

// ArticleContext is an article with every foreign key resolved.
type ArticleContext struct {
	Article     models.Article     `json:"article"`
	System      models.SystemName  `json:"system"`
	Category    models.Category    `json:"category"`
	Company     models.Company     `json:"company"`
	Prefecture  *models.Prefecture `json:"prefecture,omitempty"`
	Purpose     *models.Purpose    `json:"purpose,omitempty"`
	ArticleType models.ArticleType `json:"articleType"`
}

// Lookup answers relational questions about one catalog snapshot.
type Lookup struct {
	cat *catalog.Catalog
}

// New creates a Lookup over c.
func New(c *catalog.Catalog) *Lookup {
	return &Lookup{cat: c}
}

// Catalog returns the underlying snapshot.
func (l *Lookup) Catalog() *catalog.Catalog { return l.cat }

// ResolveArticleContext resolves an article and its company, system and
// category. It reports false when the id is unknown or any of those
// references dangle. Prefecture and purpose are optional.
func (l *Lookup) ResolveArticleContext(id int) (ArticleContext, bool) {
	a, ok := l.cat.ArticleByID(id)
	if !ok {
		return ArticleContext{}, false
	}
	co, ok := l.cat.CompanyOf(a)
	if !ok {
		return ArticleContext{}, false
	}
	sys, ok := l.cat.SystemByID(a.SystemID)
	if !ok {
		return ArticleContext{}, false
	}
	cat, ok := l.cat.CategoryByID(sys.CategoryID)
	if !ok {
		return ArticleContext{}, false
	}

	ctx := ArticleContext{Article: a, System: sys, Category: cat, Company: co}
	if p, ok := l.cat.PrefectureOf(co); ok {
		ctx.Prefecture = &p
	}
	if a.PurposeID != "" {
		if p, ok := l.cat.PurposeByID(a.PurposeID); ok {
			ctx.Purpose = &p
		}
	}
	if t, ok := l.cat.ArticleTypeByCode(a.ArticleType); ok {
		ctx.ArticleType = t
	} else {
		ctx.ArticleType = models.ArticleType{ID: a.ArticleType.TypeID(), Code: a.ArticleType}
	}
	return ctx, true
}

// Field is a numeric article field articles can be ranked by.
type Field int

// Rankable fields.
const (
	ViewCount Field = iota
	PopularityScore
)

func (f Field) value(a models.Article) float64 {
	if f == PopularityScore {
		return a.PopularityScore
	}
	return float64(a.ViewCount)
}

// TopBy returns articles sorted by f in descending order, ties kept in input
// order, without the excluded ids. A limit of zero or less means no limit.
func TopBy(articles []models.Article, f Field, limit int, exclude ...int) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if !slices.Contains(exclude, a.ID) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(x, y models.Article) int {
		return cmp.Compare(f.value(y), f.value(x))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Recommended returns up to limit articles related to currentID. Articles of
// categoryID come first, back-filled from other categories; each group is
// ordered by view count. The current article is never included.
func (l *Lookup) Recommended(currentID int, categoryID string, limit int) []models.Article {
	if limit <= 0 {
		return []models.Article{}
	}
	var same, other []models.Article
	for _, a := range l.cat.Articles() {
		if a.ID == currentID {
			continue
		}
		if categoryID != "" && l.cat.CategoryIDOf(a) == categoryID {
			same = append(same, a)
		} else {
			other = append(other, a)
		}
	}
	out := TopBy(same, ViewCount, limit)
	if len(out) < limit {
		out = append(out, TopBy(other, ViewCount, limit-len(out))...)
	}
	return out
}

// RecommendedFor is Recommended keyed by the article's own derived category.
func (l *Lookup) RecommendedFor(articleID, limit int) []models.Article {
	a, ok := l.cat.ArticleByID(articleID)
	if !ok {
		return []models.Article{}
	}
	return l.Recommended(a.ID, l.cat.CategoryIDOf(a), limit)
}

// Popular returns the most viewed articles.
func (l *Lookup) Popular(limit int) []models.Article {
	return TopBy(l.cat.Articles(), ViewCount, limit)
}

// Latest returns the most recently published articles.
func (l *Lookup) Latest(limit int) []models.Article {
	out := l.cat.Articles()
	slices.SortStableFunc(out, func(x, y models.Article) int {
		return cmp.Compare(y.PublishedAt, x.PublishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CompanyArticles returns a company's articles, most viewed first.
func (l *Lookup) CompanyArticles(companyID int, exclude ...int) []models.Article {
	var own []models.Article
	for _, a := range l.cat.Articles() {
		if a.CompanyID == companyID {
			own = append(own, a)
		}
	}
	return TopBy(own, ViewCount, 0, exclude...)
}
