package siteservice

import (
	"github.com/starford/devcase/internal/lookup"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/publish"
	"github.com/starford/devcase/internal/route"
	"github.com/starford/devcase/internal/search"
)

// ArticleItem is an article as shown in a list, with the names a card needs.
type ArticleItem struct {
	models.Article
	Path         string `json:"path,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	SystemName   string `json:"systemName,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	Prefecture   string `json:"prefecture,omitempty"`
}

// ArticleList is one page of a search or listing.
type ArticleList struct {
	Items      []ArticleItem `json:"items"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	HasPrev    bool          `json:"hasPrev"`
	HasNext    bool          `json:"hasNext"`
	State      search.State  `json:"state"`
	// Query is the canonical query string of State.
	Query string `json:"query"`
	// Ignored lists query parameters that did not resolve.
	Ignored []string `json:"ignored,omitempty"`
}

// Listing is a category, system or prefecture listing page.
type Listing struct {
	ArticleList
	Title       string                 `json:"title"`
	Path        string                 `json:"path"`
	Match       *route.Match           `json:"match,omitempty"`
	Prefecture  *models.Prefecture     `json:"prefecture,omitempty"`
	Breadcrumbs publish.BreadcrumbList `json:"breadcrumbs"`
	JSONLD      publish.CollectionPage `json:"jsonld"`
}

// ArticleDetail is the full article page.
type ArticleDetail struct {
	lookup.ArticleContext
	Path            string                 `json:"path"`
	Recommended     []ArticleItem          `json:"recommended"`
	CompanyArticles []ArticleItem          `json:"companyArticles"`
	Breadcrumbs     publish.BreadcrumbList `json:"breadcrumbs"`
	JSONLD          publish.Article        `json:"jsonld"`
}

// CategoryItem is a category with its systems and article count.
type CategoryItem struct {
	models.Category
	Path         string       `json:"path"`
	ArticleCount int          `json:"articleCount"`
	Systems      []SystemItem `json:"systems"`
}

// SystemItem is a system with its article count.
type SystemItem struct {
	models.SystemName
	Path         string `json:"path"`
	ArticleCount int    `json:"articleCount"`
}

// PrefectureItem is a prefecture with article and company counts.
type PrefectureItem struct {
	models.Prefecture
	Path         string `json:"path"`
	ArticleCount int    `json:"articleCount"`
	CompanyCount int    `json:"companyCount"`
}

// AreaItem is an area with its prefectures.
type AreaItem struct {
	models.Area
	Prefectures []PrefectureItem `json:"prefectures"`
}

// ArticleTypeItem is an article type with its article count.
type ArticleTypeItem struct {
	models.ArticleType
	ArticleCount int `json:"articleCount"`
}

// CompanyItem is a company with its derived prefecture.
type CompanyItem struct {
	models.Company
	Path           string `json:"path,omitempty"`
	PrefectureName string `json:"prefectureName,omitempty"`
	PrefectureSlug string `json:"prefectureSlug,omitempty"`
	ArticleCount   int    `json:"articleCount"`
}

// CompanyDetail is a company profile page.
type CompanyDetail struct {
	CompanyItem
	Articles []ArticleItem `json:"articles"`
}

// FullTextHit is a full-text search result joined to its article.
type FullTextHit struct {
	ArticleItem
	Snippet string `json:"snippet"`
}

func (v view) item(a models.Article) ArticleItem {
	it := ArticleItem{Article: a}
	if c, ok := v.cat.CategoryOf(a); ok {
		it.CategoryID = c.ID
		it.CategoryName = c.Name
	}
	if sys, ok := v.cat.SystemByID(a.SystemID); ok {
		it.SystemName = sys.Name
	}
	if co, ok := v.cat.CompanyOf(a); ok {
		it.CompanyName = co.Name
	}
	if canon, ok := v.res.ArticleCanonical(a); ok {
		it.Path = canon.Path
		it.Prefecture = canon.Prefecture
	}
	return it
}

func (v view) items(articles []models.Article) []ArticleItem {
	out := make([]ArticleItem, len(articles))
	for i, a := range articles {
		out[i] = v.item(a)
	}
	return out
}

func (v view) companyItem(co models.Company, articleCount int) CompanyItem {
	it := CompanyItem{Company: co, ArticleCount: articleCount}
	if p, ok := v.cat.PrefectureOf(co); ok {
		it.PrefectureName = p.Name
		it.PrefectureSlug = p.Slug
		it.Path = route.CompanyPath(p.Slug, co.ID)
	}
	return it
}
