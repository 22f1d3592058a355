package siteservice

import (
	"context"

	"github.com/starford/devcase/internal/lookup"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/route"
	"github.com/starford/devcase/internal/search"
)

// Categories lists every category with its systems and article counts.
func (s *Service) Categories(_ context.Context) []CategoryItem {
	v := s.view()
	articles := v.cat.Articles()
	byCat := v.lk.CountByCategory(articles)
	bySys := lookup.CountBySystem(articles)

	cats := v.cat.Categories()
	out := make([]CategoryItem, len(cats))
	for i, c := range cats {
		systems := v.cat.SystemsByCategory(c.ID)
		items := make([]SystemItem, len(systems))
		for j, sys := range systems {
			items[j] = SystemItem{SystemName: sys, Path: route.SystemPath(sys.Slug), ArticleCount: bySys[sys.ID]}
		}
		out[i] = CategoryItem{
			Category:     c,
			Path:         route.CategoryPath(c.Slug),
			ArticleCount: byCat[c.ID],
			Systems:      items,
		}
	}
	return out
}

// Systems lists every system with its article count.
func (s *Service) Systems(_ context.Context) []SystemItem {
	v := s.view()
	counts := lookup.CountBySystem(v.cat.Articles())
	systems := v.cat.Systems()
	out := make([]SystemItem, len(systems))
	for i, sys := range systems {
		out[i] = SystemItem{SystemName: sys, Path: route.SystemPath(sys.Slug), ArticleCount: counts[sys.ID]}
	}
	return out
}

// Prefectures lists every prefecture with article and company counts.
func (s *Service) Prefectures(_ context.Context) []PrefectureItem {
	v := s.view()
	return prefectureItems(v, v.cat.Prefectures())
}

func prefectureItems(v view, prefs []models.Prefecture) []PrefectureItem {
	articles := v.lk.CountByPrefecture(v.cat.Articles())
	companies := lookup.CountCompaniesByPrefecture(v.cat.Companies())
	out := make([]PrefectureItem, len(prefs))
	for i, p := range prefs {
		out[i] = PrefectureItem{
			Prefecture:   p,
			Path:         route.PrefecturePath(p.Slug),
			ArticleCount: articles[p.Code],
			CompanyCount: companies[p.Code],
		}
	}
	return out
}

// Areas lists the areas with their prefectures.
func (s *Service) Areas(_ context.Context) []AreaItem {
	v := s.view()
	areas := v.cat.Areas()
	out := make([]AreaItem, len(areas))
	for i, a := range areas {
		out[i] = AreaItem{Area: a, Prefectures: prefectureItems(v, v.cat.PrefecturesByArea(a.Code))}
	}
	return out
}

// ArticleTypes lists the article types with their article counts.
func (s *Service) ArticleTypes(_ context.Context) []ArticleTypeItem {
	v := s.view()
	counts := lookup.CountByArticleType(v.cat.Articles())
	types := v.cat.ArticleTypes()
	out := make([]ArticleTypeItem, len(types))
	for i, t := range types {
		out[i] = ArticleTypeItem{ArticleType: t, ArticleCount: counts[t.ID]}
	}
	return out
}

// Purposes lists the purpose master.
func (s *Service) Purposes(_ context.Context) []models.Purpose {
	return s.view().cat.Purposes()
}

// Tags returns keyword counts, most used first. limit <= 0 returns all.
func (s *Service) Tags(_ context.Context, limit int) []lookup.TagCount {
	tags := lookup.TagCounts(s.view().cat.Articles())
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// Companies lists companies, optionally only those of one prefecture slug.
func (s *Service) Companies(_ context.Context, prefSlug string) ([]CompanyItem, error) {
	v := s.view()
	companies := v.cat.Companies()
	if prefSlug != "" {
		p, ok := v.cat.PrefectureBySlug(prefSlug)
		if !ok {
			return nil, notFound("prefecture %q", prefSlug)
		}
		companies = v.cat.CompaniesByPrefecture(p.Code)
	}

	counts := make(map[int]int)
	for _, a := range v.cat.Articles() {
		counts[a.CompanyID]++
	}
	out := make([]CompanyItem, len(companies))
	for i, co := range companies {
		out[i] = v.companyItem(co, counts[co.ID])
	}
	return out, nil
}

// Company returns the profile at /companies/{pref}/{id}.
func (s *Service) Company(_ context.Context, prefSlug, idSeg string) (CompanyDetail, error) {
	if _, ok := route.ParseID(idSeg); !ok {
		return CompanyDetail{}, invalidID(idSeg)
	}
	v := s.view()
	co, _, ok := v.res.ResolveCompanyPath(prefSlug, idSeg)
	if !ok {
		return CompanyDetail{}, notFound("company /%s/%s", prefSlug, idSeg)
	}
	articles := v.lk.CompanyArticles(co.ID)
	search.Sort(articles, search.DefaultSort)
	return CompanyDetail{
		CompanyItem: v.companyItem(co, len(articles)),
		Articles:    v.items(articles),
	}, nil
}
