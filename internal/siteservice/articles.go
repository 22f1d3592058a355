package siteservice

import (
	"context"
	"fmt"
	"net/url"

	"github.com/starford/devcase/internal/apperr"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/publish"
	"github.com/starford/devcase/internal/route"
	"github.com/starford/devcase/internal/search"
)

const (
	recommendedLimit     = 4
	companyArticlesLimit = 4
)

// SearchArticles runs the query-string search over every article.
func (s *Service) SearchArticles(_ context.Context, q url.Values) ArticleList {
	v := s.view()
	st, ignored := search.ParseQuery(q, v.cat)
	return s.list(v, v.cat.Articles(), st, ignored)
}

// Search runs a search from an explicit state.
func (s *Service) Search(_ context.Context, st search.State) ArticleList {
	v := s.view()
	return s.list(v, v.cat.Articles(), st, nil)
}

func (s *Service) list(v view, pool []models.Article, st search.State, ignored []string) ArticleList {
	// Normalise through the state update function so page and sort are valid.
	st = search.ApplyFilters(st, search.Patch{})
	found := v.eng.Search(pool, st.Filters, st.Sort)
	page := search.Paginate(found, st.Page, s.opts.PerPage)
	st.Page = page.Page
	return ArticleList{
		Items:      v.items(page.Items),
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		State:      st,
		Query:      search.EncodeQuery(st, v.cat).Encode(),
		Ignored:    ignored,
	}
}

func notFound(what string, args ...any) error {
	return fmt.Errorf("%w: %s", apperr.ErrNotFound, fmt.Sprintf(what, args...))
}

func invalidID(seg string) error {
	return fmt.Errorf("%w: %w: %q", apperr.ErrNotFound, apperr.ErrInvalidID, seg)
}

// Article returns an article page by id. A malformed id is not found.
func (s *Service) Article(_ context.Context, idSeg string) (ArticleDetail, error) {
	id, ok := route.ParseID(idSeg)
	if !ok {
		return ArticleDetail{}, invalidID(idSeg)
	}
	v := s.view()
	return s.articleDetail(v, id)
}

// ArticleByPath resolves /articles/{pref}/{topic}/{id}. When the path is
// valid but not canonical, redirect holds the canonical path and the detail
// is empty.
func (s *Service) ArticleByPath(_ context.Context, pref, topic, idSeg string) (detail ArticleDetail, redirect string, err error) {
	v := s.view()
	m, ok := v.res.ResolveArticlePath(pref, topic, idSeg)
	if !ok {
		return ArticleDetail{}, "", notFound("article path /%s/%s/%s", pref, topic, idSeg)
	}
	if !m.IsCanonical {
		return ArticleDetail{}, m.Canonical.Path, nil
	}
	d, err := s.articleDetail(v, m.Article.ID)
	return d, "", err
}

func (s *Service) articleDetail(v view, id int) (ArticleDetail, error) {
	ctx, ok := v.lk.ResolveArticleContext(id)
	if !ok {
		return ArticleDetail{}, notFound("article %d", id)
	}
	d := ArticleDetail{
		ArticleContext:  ctx,
		Recommended:     v.items(v.lk.Recommended(id, ctx.Category.ID, recommendedLimit)),
		CompanyArticles: v.items(v.lk.CompanyArticles(ctx.Company.ID, id)),
		Breadcrumbs:     v.gen.ArticleBreadcrumbs(ctx, s.opts.SiteName),
		JSONLD:          v.gen.ArticleLD(ctx, s.opts.SiteName),
	}
	if len(d.CompanyArticles) > companyArticlesLimit {
		d.CompanyArticles = d.CompanyArticles[:companyArticlesLimit]
	}
	if canon, ok := v.res.ArticleCanonical(ctx.Article); ok {
		d.Path = canon.Path
	}
	return d, nil
}

// Listing returns the listing page of a category, system or prefecture
// slug, narrowed further by the query string.
func (s *Service) Listing(_ context.Context, kind route.Kind, slug string, q url.Values) (Listing, error) {
	v := s.view()
	var base search.Filters
	var title, path string
	var m route.Match
	switch kind {
	case route.KindCategory:
		c, ok := v.cat.CategoryBySlug(slug)
		if !ok {
			return Listing{}, notFound("category %q", slug)
		}
		base.Categories = []string{c.ID}
		title, path = c.Name, route.CategoryPath(c.Slug)
		m = route.Match{Kind: kind, Category: &c}
	case route.KindSystem:
		sys, ok := v.cat.SystemBySlug(slug)
		if !ok {
			return Listing{}, notFound("system %q", slug)
		}
		base.Systems = []string{sys.ID}
		title, path = sys.Name, route.SystemPath(sys.Slug)
		m = route.Match{Kind: kind, System: &sys}
	case route.KindPrefecture:
		p, ok := v.cat.PrefectureBySlug(slug)
		if !ok {
			return Listing{}, notFound("prefecture %q", slug)
		}
		base.Prefectures = []string{p.Code}
		title, path = p.Name, route.PrefecturePath(p.Slug)
		m = route.Match{Kind: kind, Prefecture: &p}
	default:
		return Listing{}, notFound("listing kind %q", kind)
	}

	pool := v.eng.Search(v.cat.Articles(), base, search.DefaultSort)
	st, ignored := search.ParseQuery(q, v.cat)
	l := Listing{
		ArticleList: s.list(v, pool, st, ignored),
		Title:       title,
		Path:        path,
		Match:       &m,
	}
	l.Breadcrumbs = v.gen.Breadcrumbs(
		publish.Crumb{Name: s.opts.SiteName, Path: route.HomePath},
		publish.Crumb{Name: title, Path: path},
	)
	l.JSONLD = v.gen.Collection(title, "", path, pool)
	return l, nil
}

// PrefectureTopicListing lists a prefecture's articles in one category or
// system.
func (s *Service) PrefectureTopicListing(_ context.Context, prefSlug, topicSlug string, q url.Values) (Listing, error) {
	v := s.view()
	p, ok := v.cat.PrefectureBySlug(prefSlug)
	if !ok {
		return Listing{}, notFound("prefecture %q", prefSlug)
	}
	m, ok := v.res.ResolveTopic(topicSlug)
	if !ok {
		return Listing{}, notFound("topic %q", topicSlug)
	}

	base := search.Filters{Prefectures: []string{p.Code}}
	topicPath := route.SystemPath(m.Slug())
	topicName := ""
	switch m.Kind {
	case route.KindCategory:
		base.Categories = []string{m.Category.ID}
		topicPath, topicName = route.CategoryPath(m.Category.Slug), m.Category.Name
	case route.KindSystem:
		base.Systems = []string{m.System.ID}
		topicName = m.System.Name
	}
	title := p.Name + " " + topicName
	path := route.PrefectureTopicPath(p.Slug, m.Slug())

	pool := v.eng.Search(v.cat.Articles(), base, search.DefaultSort)
	st, ignored := search.ParseQuery(q, v.cat)
	l := Listing{
		ArticleList: s.list(v, pool, st, ignored),
		Title:       title,
		Path:        path,
		Match:       &m,
		Prefecture:  &p,
	}
	l.Breadcrumbs = v.gen.Breadcrumbs(
		publish.Crumb{Name: s.opts.SiteName, Path: route.HomePath},
		publish.Crumb{Name: p.Name, Path: route.PrefecturePath(p.Slug)},
		publish.Crumb{Name: topicName, Path: topicPath},
		publish.Crumb{Name: title, Path: path},
	)
	l.JSONLD = v.gen.Collection(title, "", path, pool)
	return l, nil
}

// Resolve resolves a slug against the category, system and prefecture
// tables.
func (s *Service) Resolve(_ context.Context, slug string) (route.Match, error) {
	m, ok := s.view().res.Resolve(slug)
	if !ok {
		return route.Match{}, notFound("slug %q", slug)
	}
	return m, nil
}

// Popular returns the most viewed articles.
func (s *Service) Popular(_ context.Context, limit int) []ArticleItem {
	v := s.view()
	return v.items(v.lk.Popular(limit))
}

// Latest returns the newest articles.
func (s *Service) Latest(_ context.Context, limit int) []ArticleItem {
	v := s.view()
	return v.items(v.lk.Latest(limit))
}
