package search

import "github.com/starford/devcase/internal/models"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 12

// Page is one page of a result set.
type Page struct {
	Items      []models.Article `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	HasPrev    bool             `json:"hasPrev"`
	HasNext    bool             `json:"hasNext"`
}

// Paginate slices articles into pages of perPage and returns the requested
// one. Out-of-range pages are clamped to the first or last page; an empty
// result still has one (empty) page.
func Paginate(articles []models.Article, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(articles)
	pages := max(1, (total+perPage-1)/perPage)
	page = min(max(page, 1), pages)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	items := make([]models.Article, end-start)
	copy(items, articles[start:end])

	return Page{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}
