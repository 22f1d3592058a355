package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/devcase/internal/siteservice"
)

// Prefix is where NewRouter is mounted. Redirects to canonical article
// paths stay under it.
const Prefix = "/api"

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *siteservice.Service, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Articles.
	r.Get("/articles", h.SearchArticles)
	r.Get("/articles/{id}", h.GetArticle)
	r.Get("/articles/category/{slug}", h.CategoryListing)
	r.Get("/articles/system/{slug}", h.SystemListing)
	r.Get("/articles/prefecture/{slug}", h.PrefectureListing)
	r.Get("/articles/{pref}/{topic}", h.PrefectureTopicListing)
	r.Get("/articles/{pref}/{topic}/{id}", h.GetArticleByPath)
	r.Get("/popular", h.Popular)
	r.Get("/latest", h.Latest)

	// Slug routing.
	r.Get("/resolve/{slug}", h.Resolve)

	// Masters.
	r.Get("/categories", h.Categories)
	r.Get("/systems", h.Systems)
	r.Get("/prefectures", h.Prefectures)
	r.Get("/areas", h.Areas)
	r.Get("/article-types", h.ArticleTypes)
	r.Get("/purposes", h.Purposes)
	r.Get("/tags", h.Tags)

	// Companies.
	r.Get("/companies", h.Companies)
	r.Get("/companies/{pref}", h.CompaniesByPrefecture)
	r.Get("/companies/{pref}/{id}", h.Company)

	// Full-text search.
	r.Get("/search", h.Search)

	r.Get("/catalog", h.Status)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
