package api

import (
	"github.com/starford/devcase/internal/lookup"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/siteservice"
)

// ArticleList is one page of search results (aliased from the service layer).
type ArticleList = siteservice.ArticleList

// ArticleDetail is the full article response type.
type ArticleDetail = siteservice.ArticleDetail

// Listing is a category, system or prefecture listing.
type Listing = siteservice.Listing

// CompanyDetail is a company profile.
type CompanyDetail = siteservice.CompanyDetail

// ArticlesResponse wraps an unpaginated article list.
type ArticlesResponse struct {
	Articles []siteservice.ArticleItem `json:"articles" validate:"required"`
}

// CategoriesResponse wraps the category master.
type CategoriesResponse struct {
	Categories []siteservice.CategoryItem `json:"categories" validate:"required"`
}

// SystemsResponse wraps the system master.
type SystemsResponse struct {
	Systems []siteservice.SystemItem `json:"systems" validate:"required"`
}

// PrefecturesResponse wraps the prefecture master.
type PrefecturesResponse struct {
	Prefectures []siteservice.PrefectureItem `json:"prefectures" validate:"required"`
}

// AreasResponse wraps the area master.
type AreasResponse struct {
	Areas []siteservice.AreaItem `json:"areas" validate:"required"`
}

// ArticleTypesResponse wraps the article type master.
type ArticleTypesResponse struct {
	ArticleTypes []siteservice.ArticleTypeItem `json:"articleTypes" validate:"required"`
}

// PurposesResponse wraps the purpose master.
type PurposesResponse struct {
	Purposes []models.Purpose `json:"purposes" validate:"required"`
}

// TagsResponse wraps keyword counts.
type TagsResponse struct {
	Tags []lookup.TagCount `json:"tags" validate:"required"`
}

// CompaniesResponse wraps a company list.
type CompaniesResponse struct {
	Companies []siteservice.CompanyItem `json:"companies" validate:"required"`
	Total     int                       `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps full-text search results.
type SearchResponse struct {
	Results []siteservice.FullTextHit `json:"results" validate:"required"`
}

// ResolveResponse is a resolved slug: {"type": "category", "data": {...}}.
type ResolveResponse struct {
	Type string `json:"type" example:"category" validate:"required"`
	Data any    `json:"data" validate:"required"`
}

// CatalogStatus describes the live catalog.
type CatalogStatus struct {
	Version  string `json:"version" example:"3f2a..." validate:"required"`
	Articles int    `json:"articles" example:"120" validate:"required"`
}
