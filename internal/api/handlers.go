package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/devcase/internal/route"
	"github.com/starford/devcase/internal/siteservice"
)

const defaultListLimit = 10

// Handler holds API route handlers.
type Handler struct {
	svc *siteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// param returns a decoded URL parameter. chi leaves percent-encoding in
// place for non-ASCII slugs.
func param(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// SearchArticles handles GET /api/articles.
//
//	@Summary		Search, filter and paginate articles
//	@Tags			articles
//	@Produce		json
//	@Param			keyword		query		string		false	"Title substring"
//	@Param			category	query		[]string	false	"Category slug (repeatable)"
//	@Param			system		query		[]string	false	"System slug (repeatable)"
//	@Param			type		query		[]string	false	"Article type slug (repeatable)"
//	@Param			prefecture	query		[]string	false	"Prefecture slug (repeatable)"
//	@Param			company		query		string		false	"Company name substring"
//	@Param			sort		query		string		false	"Sort order"	Enums(publishedAt, viewCount)
//	@Param			page		query		int			false	"Page number"
//	@Success		200			{object}	ArticleList
//	@Router			/articles [get]
func (h *Handler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SearchArticles(r.Context(), r.URL.Query()))
}

// GetArticle handles GET /api/articles/{id}.
//
//	@Summary		Get an article by id
//	@Tags			articles
//	@Produce		json
//	@Param			id	path		int	true	"Article id"
//	@Success		200	{object}	ArticleDetail
//	@Failure		404	{object}	errResponse
//	@Router			/articles/{id} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Article(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get article", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GetArticleByPath handles GET /api/articles/{pref}/{topic}/{id}.
//
//	@Summary		Get an article by its hierarchical path
//	@Description	Redirects with 301 when the segments resolve but are not the article's canonical path.
//	@Tags			articles
//	@Produce		json
//	@Param			pref	path		string	true	"Prefecture slug"
//	@Param			topic	path		string	true	"Category or system slug"
//	@Param			id		path		int		true	"Article id"
//	@Success		200		{object}	ArticleDetail
//	@Success		301		"Moved to the canonical path"
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{pref}/{topic}/{id} [get]
func (h *Handler) GetArticleByPath(w http.ResponseWriter, r *http.Request) {
	d, redirect, err := h.svc.ArticleByPath(r.Context(), param(r, "pref"), param(r, "topic"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get article by path", err)
		return
	}
	if redirect != "" {
		http.Redirect(w, r, Prefix+redirect, http.StatusMovedPermanently)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) listing(w http.ResponseWriter, r *http.Request, kind route.Kind) {
	l, err := h.svc.Listing(r.Context(), kind, param(r, "slug"), r.URL.Query())
	if err != nil {
		writeError(w, "listing", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CategoryListing handles GET /api/articles/category/{slug}.
//
//	@Summary		List a category's articles
//	@Tags			listings
//	@Produce		json
//	@Param			slug	path		string	true	"Category slug"
//	@Success		200		{object}	Listing
//	@Failure		404		{object}	errResponse
//	@Router			/articles/category/{slug} [get]
func (h *Handler) CategoryListing(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, route.KindCategory)
}

// SystemListing handles GET /api/articles/system/{slug}.
//
//	@Summary		List a system's articles
//	@Tags			listings
//	@Produce		json
//	@Param			slug	path		string	true	"System slug"
//	@Success		200		{object}	Listing
//	@Failure		404		{object}	errResponse
//	@Router			/articles/system/{slug} [get]
func (h *Handler) SystemListing(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, route.KindSystem)
}

// PrefectureListing handles GET /api/articles/prefecture/{slug}.
//
//	@Summary		List the articles of companies in a prefecture
//	@Tags			listings
//	@Produce		json
//	@Param			slug	path		string	true	"Prefecture slug"
//	@Success		200		{object}	Listing
//	@Failure		404		{object}	errResponse
//	@Router			/articles/prefecture/{slug} [get]
func (h *Handler) PrefectureListing(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, route.KindPrefecture)
}

// PrefectureTopicListing handles GET /api/articles/{pref}/{topic}.
//
//	@Summary		List a prefecture's articles in one category or system
//	@Tags			listings
//	@Produce		json
//	@Param			pref	path		string	true	"Prefecture slug"
//	@Param			topic	path		string	true	"Category or system slug"
//	@Success		200		{object}	Listing
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{pref}/{topic} [get]
func (h *Handler) PrefectureTopicListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.PrefectureTopicListing(r.Context(), param(r, "pref"), param(r, "topic"), r.URL.Query())
	if err != nil {
		writeError(w, "prefecture topic listing", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Popular handles GET /api/popular.
//
//	@Summary		Most viewed articles
//	@Tags			articles
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	ArticlesResponse
//	@Router			/popular [get]
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ArticlesResponse{Articles: h.svc.Popular(r.Context(), limitParam(r, defaultListLimit))})
}

// Latest handles GET /api/latest.
//
//	@Summary		Most recently published articles
//	@Tags			articles
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	ArticlesResponse
//	@Router			/latest [get]
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ArticlesResponse{Articles: h.svc.Latest(r.Context(), limitParam(r, defaultListLimit))})
}

// Resolve handles GET /api/resolve/{slug}.
//
//	@Summary		Resolve a slug to a category, system or prefecture
//	@Tags			routing
//	@Produce		json
//	@Param			slug	path		string	true	"Slug"
//	@Success		200		{object}	ResolveResponse
//	@Failure		404		{object}	errResponse
//	@Router			/resolve/{slug} [get]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Resolve(r.Context(), param(r, "slug"))
	if err != nil {
		writeError(w, "resolve", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Categories handles GET /api/categories.
//
//	@Summary		Categories with their systems and article counts
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Router			/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: h.svc.Categories(r.Context())})
}

// Systems handles GET /api/systems.
//
//	@Summary		Systems with article counts
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	SystemsResponse
//	@Router			/systems [get]
func (h *Handler) Systems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SystemsResponse{Systems: h.svc.Systems(r.Context())})
}

// Prefectures handles GET /api/prefectures.
//
//	@Summary		Prefectures with article and company counts
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	PrefecturesResponse
//	@Router			/prefectures [get]
func (h *Handler) Prefectures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PrefecturesResponse{Prefectures: h.svc.Prefectures(r.Context())})
}

// Areas handles GET /api/areas.
//
//	@Summary		Areas with their prefectures
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	AreasResponse
//	@Router			/areas [get]
func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AreasResponse{Areas: h.svc.Areas(r.Context())})
}

// ArticleTypes handles GET /api/article-types.
//
//	@Summary		Article types with article counts
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	ArticleTypesResponse
//	@Router			/article-types [get]
func (h *Handler) ArticleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ArticleTypesResponse{ArticleTypes: h.svc.ArticleTypes(r.Context())})
}

// Purposes handles GET /api/purposes.
//
//	@Summary		Purpose master
//	@Tags			masters
//	@Produce		json
//	@Success		200	{object}	PurposesResponse
//	@Router			/purposes [get]
func (h *Handler) Purposes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PurposesResponse{Purposes: h.svc.Purposes(r.Context())})
}

// Tags handles GET /api/tags.
//
//	@Summary		Keyword counts, most used first
//	@Tags			masters
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	TagsResponse
//	@Router			/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TagsResponse{Tags: h.svc.Tags(r.Context(), limitParam(r, 0))})
}

func (h *Handler) companies(w http.ResponseWriter, r *http.Request, prefSlug string) {
	items, err := h.svc.Companies(r.Context(), prefSlug)
	if err != nil {
		writeError(w, "list companies", err)
		return
	}
	writeJSON(w, http.StatusOK, CompaniesResponse{Companies: items, Total: len(items)})
}

// Companies handles GET /api/companies.
//
//	@Summary		List companies
//	@Tags			companies
//	@Produce		json
//	@Success		200	{object}	CompaniesResponse
//	@Router			/companies [get]
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	h.companies(w, r, "")
}

// CompaniesByPrefecture handles GET /api/companies/{pref}.
//
//	@Summary		List companies in a prefecture
//	@Tags			companies
//	@Produce		json
//	@Param			pref	path		string	true	"Prefecture slug"
//	@Success		200		{object}	CompaniesResponse
//	@Failure		404		{object}	errResponse
//	@Router			/companies/{pref} [get]
func (h *Handler) CompaniesByPrefecture(w http.ResponseWriter, r *http.Request) {
	h.companies(w, r, param(r, "pref"))
}

// Company handles GET /api/companies/{pref}/{id}.
//
//	@Summary		Company profile with its articles
//	@Tags			companies
//	@Produce		json
//	@Param			pref	path		string	true	"Prefecture slug"
//	@Param			id		path		int		true	"Company id"
//	@Success		200		{object}	CompanyDetail
//	@Failure		404		{object}	errResponse
//	@Router			/companies/{pref}/{id} [get]
func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Company(r.Context(), param(r, "pref"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get company", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across article bodies
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	results, err := h.svc.FullText(r.Context(), q, limitParam(r, 0))
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Status handles GET /api/catalog.
//
//	@Summary		Live catalog version and size
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogStatus
//	@Router			/catalog [get]
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogStatus{Version: h.svc.Version(), Articles: h.svc.ArticleCount()})
}
