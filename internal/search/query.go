package search

import (
	"net/url"
	"strconv"

	"github.com/starford/devcase/internal/catalog"
)

// Query parameter names.
const (
	ParamKeyword     = "keyword"
	ParamCategory    = "category"
	ParamSystem      = "system"
	ParamType        = "type"
	ParamArticleType = "articleType"
	ParamPrefecture  = "prefecture"
	ParamCompany     = "company"
	ParamPage        = "page"
	ParamSort        = "sort"
)

var sortAliases = map[string]SortKey{
	"publishedAt": SortPublishedAt,
	"newest":      SortPublishedAt,
	"viewCount":   SortViewCount,
	"views":       SortViewCount,
	"popular":     SortViewCount,
}

// ParseQuery translates slug-based query parameters into a State. Slugs
// that match no master record and malformed values are left out of the
// state and returned as "param=value" strings so callers can report them.
func ParseQuery(v url.Values, c *catalog.Catalog) (State, []string) {
	st := NewState()
	var ignored []string
	ignore := func(k, val string) { ignored = append(ignored, k+"="+val) }

	st.Filters.Keyword = v.Get(ParamKeyword)
	st.Filters.Company = v.Get(ParamCompany)

	for _, slug := range v[ParamCategory] {
		if x, ok := c.CategoryBySlug(slug); ok {
			st.Filters.Categories = appendUnique(st.Filters.Categories, x.ID)
		} else {
			ignore(ParamCategory, slug)
		}
	}
	for _, slug := range v[ParamSystem] {
		if x, ok := c.SystemBySlug(slug); ok {
			st.Filters.Systems = appendUnique(st.Filters.Systems, x.ID)
		} else {
			ignore(ParamSystem, slug)
		}
	}
	for _, key := range []string{ParamType, ParamArticleType} {
		for _, slug := range v[key] {
			if x, ok := c.ArticleTypeBySlug(slug); ok {
				st.Filters.ArticleTypes = appendUnique(st.Filters.ArticleTypes, x.ID)
			} else {
				ignore(key, slug)
			}
		}
	}
	for _, slug := range v[ParamPrefecture] {
		if x, ok := c.PrefectureBySlug(slug); ok {
			st.Filters.Prefectures = appendUnique(st.Filters.Prefectures, x.Code)
		} else {
			ignore(ParamPrefecture, slug)
		}
	}

	if raw := v.Get(ParamSort); raw != "" {
		if k, ok := sortAliases[raw]; ok {
			st.Sort = k
		} else {
			ignore(ParamSort, raw)
		}
	}
	if raw := v.Get(ParamPage); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			st.Page = n
		} else {
			ignore(ParamPage, raw)
		}
	}
	return st, ignored
}

// EncodeQuery is the inverse of ParseQuery. Defaults are omitted, so the
// zero state encodes to an empty query. Ids without a master record are
// dropped.
func EncodeQuery(st State, c *catalog.Catalog) url.Values {
	v := url.Values{}
	if st.Filters.Keyword != "" {
		v.Set(ParamKeyword, st.Filters.Keyword)
	}
	for _, id := range st.Filters.Categories {
		if x, ok := c.CategoryByID(id); ok {
			v.Add(ParamCategory, x.Slug)
		}
	}
	for _, id := range st.Filters.Systems {
		if x, ok := c.SystemByID(id); ok {
			v.Add(ParamSystem, x.Slug)
		}
	}
	for _, id := range st.Filters.ArticleTypes {
		if x, ok := c.ArticleTypeByID(id); ok {
			v.Add(ParamType, x.Slug)
		}
	}
	for _, code := range st.Filters.Prefectures {
		if x, ok := c.PrefectureByCode(code); ok {
			v.Add(ParamPrefecture, x.Slug)
		}
	}
	if st.Filters.Company != "" {
		v.Set(ParamCompany, st.Filters.Company)
	}
	if st.Sort.Valid() && st.Sort != DefaultSort {
		v.Set(ParamSort, string(st.Sort))
	}
	if st.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(st.Page))
	}
	return v
}

func appendUnique(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
