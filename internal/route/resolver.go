// Package route maps URL segments to catalog records and builds the
// canonical paths of every page.
package route

import (
	"encoding/json"
	"strconv"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/models"
)

// Kind names the table a slug resolved in.
type Kind string

// Kinds, in resolution priority order.
const (
	KindCategory   Kind = "category"
	KindSystem     Kind = "system"
	KindPrefecture Kind = "prefecture"
)

// Match is a resolved slug. Exactly one of the record fields is set,
// matching Kind.
type Match struct {
	Kind       Kind
	Category   *models.Category
	System     *models.SystemName
	Prefecture *models.Prefecture
}

// Record returns the matched master record.
func (m Match) Record() any {
	switch m.Kind {
	case KindCategory:
		return m.Category
	case KindSystem:
		return m.System
	case KindPrefecture:
		return m.Prefecture
	}
	return nil
}

// Slug returns the slug of the matched record.
func (m Match) Slug() string {
	switch m.Kind {
	case KindCategory:
		return m.Category.Slug
	case KindSystem:
		return m.System.Slug
	case KindPrefecture:
		return m.Prefecture.Slug
	}
	return ""
}

// MarshalJSON encodes the match as {"type": kind, "data": record}.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind `json:"type"`
		Data any  `json:"data"`
	}{m.Kind, m.Record()})
}

// Resolver resolves slugs against one catalog snapshot.
type Resolver struct {
	cat *catalog.Catalog
	// fallback is the prefecture slug used in canonical article paths when
	// the article's prefecture cannot be resolved.
	fallback string
}

// New creates a Resolver. fallbackPrefecture may be empty, in which case
// articles without a resolvable prefecture have no canonical path.
func New(c *catalog.Catalog, fallbackPrefecture string) *Resolver {
	return &Resolver{cat: c, fallback: fallbackPrefecture}
}

// Resolve tries the category, system and prefecture tables in that order
// and returns the first match. Slugs are not assumed unique across tables.
func (r *Resolver) Resolve(slug string) (Match, bool) {
	if m, ok := r.ResolveTopic(slug); ok {
		return m, true
	}
	if p, ok := r.cat.PrefectureBySlug(slug); ok {
		return Match{Kind: KindPrefecture, Prefecture: &p}, true
	}
	return Match{}, false
}

// ResolveTopic resolves the category-or-system segment of a path:
// categories first, then systems.
func (r *Resolver) ResolveTopic(slug string) (Match, bool) {
	if slug == "" {
		return Match{}, false
	}
	if c, ok := r.cat.CategoryBySlug(slug); ok {
		return Match{Kind: KindCategory, Category: &c}, true
	}
	if s, ok := r.cat.SystemBySlug(slug); ok {
		return Match{Kind: KindSystem, System: &s}, true
	}
	return Match{}, false
}

// ParseID parses a numeric id segment. Anything other than a positive
// decimal integer is reported as not found.
func ParseID(seg string) (int, bool) {
	if seg == "" || seg[0] == '+' {
		return 0, false
	}
	id, err := strconv.Atoi(seg)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Canonical is the canonical location of an article.
type Canonical struct {
	Path       string
	Prefecture string
	Category   string
	// Fallback is set when Prefecture is the configured fallback rather than
	// the company's prefecture.
	Fallback bool
}

// ArticleCanonical computes the canonical path of a. It reports false when
// the article's category cannot be derived, or its prefecture cannot be
// resolved and no fallback is configured.
func (r *Resolver) ArticleCanonical(a models.Article) (Canonical, bool) {
	cat, ok := r.cat.CategoryOf(a)
	if !ok {
		return Canonical{}, false
	}
	out := Canonical{Category: cat.Slug}
	if p, ok := r.cat.ArticlePrefecture(a); ok {
		out.Prefecture = p.Slug
	} else if r.fallback != "" {
		out.Prefecture = r.fallback
		out.Fallback = true
	} else {
		return Canonical{}, false
	}
	out.Path = ArticlePath(out.Prefecture, out.Category, a.ID)
	return out, true
}

// ArticlePathMatch is the result of resolving an article path.
type ArticlePathMatch struct {
	Article    models.Article
	Prefecture models.Prefecture
	Topic      Match
	Canonical  Canonical
	// IsCanonical reports whether the requested path is the canonical one.
	IsCanonical bool
}

// ResolveArticlePath resolves /articles/{pref}/{topic}/{id}. Every segment
// must resolve on its own; an article reached through segments that are
// valid but not its own is returned with IsCanonical false.
func (r *Resolver) ResolveArticlePath(prefSlug, topicSlug, idSeg string) (ArticlePathMatch, bool) {
	id, ok := ParseID(idSeg)
	if !ok {
		return ArticlePathMatch{}, false
	}
	a, ok := r.cat.ArticleByID(id)
	if !ok {
		return ArticlePathMatch{}, false
	}
	pref, ok := r.cat.PrefectureBySlug(prefSlug)
	if !ok {
		return ArticlePathMatch{}, false
	}
	topic, ok := r.ResolveTopic(topicSlug)
	if !ok {
		return ArticlePathMatch{}, false
	}
	canon, ok := r.ArticleCanonical(a)
	if !ok {
		return ArticlePathMatch{}, false
	}
	return ArticlePathMatch{
		Article:     a,
		Prefecture:  pref,
		Topic:       topic,
		Canonical:   canon,
		IsCanonical: canon.Path == ArticlePath(prefSlug, topicSlug, id) && idSeg == strconv.Itoa(id),
	}, true
}

// ResolveCompanyPath resolves /companies/{pref}/{id}. The company must be
// located in the named prefecture.
func (r *Resolver) ResolveCompanyPath(prefSlug, idSeg string) (models.Company, models.Prefecture, bool) {
	id, ok := ParseID(idSeg)
	if !ok {
		return models.Company{}, models.Prefecture{}, false
	}
	pref, ok := r.cat.PrefectureBySlug(prefSlug)
	if !ok {
		return models.Company{}, models.Prefecture{}, false
	}
	co, ok := r.cat.CompanyByID(id)
	if !ok || co.PrefectureCode != pref.Code {
		return models.Company{}, models.Prefecture{}, false
	}
	return co, pref, true
}
