package search

import "slices"

// State is the full input of a listing view: filters, order and page.
type State struct {
	Filters Filters `json:"filters"`
	Sort    SortKey `json:"sort"`
	Page    int     `json:"page"`
}

// NewState returns the initial state: no filters, default order, page 1.
func NewState() State {
	return State{Sort: DefaultSort, Page: 1}
}

// Patch describes one change to a State. Nil and empty fields leave the
// state untouched.
type Patch struct {
	// Reset clears every filter before the rest of the patch is applied.
	Reset bool

	Keyword *string
	Company *string

	// Toggle* add the id when absent and remove it when present.
	ToggleCategory    string
	ToggleSystem      string
	ToggleArticleType string
	TogglePrefecture  string

	Sort *SortKey
	Page *int
}

// ApplyFilters returns s with p applied. s is not modified. Any change to
// the filters sends the state back to page 1, so an explicit Page in the
// same patch only takes effect when the filters are unchanged.
func ApplyFilters(s State, p Patch) State {
	next := State{
		Filters: cloneFilters(s.Filters),
		Sort:    s.Sort,
		Page:    s.Page,
	}
	if !next.Sort.Valid() {
		next.Sort = DefaultSort
	}
	if next.Page < 1 {
		next.Page = 1
	}

	changed := false
	if p.Reset && !next.Filters.IsZero() {
		next.Filters = Filters{}
		changed = true
	}
	if p.Keyword != nil && *p.Keyword != next.Filters.Keyword {
		next.Filters.Keyword = *p.Keyword
		changed = true
	}
	if p.Company != nil && *p.Company != next.Filters.Company {
		next.Filters.Company = *p.Company
		changed = true
	}
	if p.ToggleCategory != "" {
		next.Filters.Categories = toggle(next.Filters.Categories, p.ToggleCategory)
		changed = true
	}
	if p.ToggleSystem != "" {
		next.Filters.Systems = toggle(next.Filters.Systems, p.ToggleSystem)
		changed = true
	}
	if p.ToggleArticleType != "" {
		next.Filters.ArticleTypes = toggle(next.Filters.ArticleTypes, p.ToggleArticleType)
		changed = true
	}
	if p.TogglePrefecture != "" {
		next.Filters.Prefectures = toggle(next.Filters.Prefectures, p.TogglePrefecture)
		changed = true
	}
	if p.Sort != nil && p.Sort.Valid() && *p.Sort != next.Sort {
		next.Sort = *p.Sort
		next.Page = 1
	}

	switch {
	case changed:
		next.Page = 1
	case p.Page != nil:
		next.Page = max(1, *p.Page)
	}
	return next
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, v)
}

func cloneFilters(f Filters) Filters {
	f.Categories = slices.Clone(f.Categories)
	f.Systems = slices.Clone(f.Systems)
	f.ArticleTypes = slices.Clone(f.ArticleTypes)
	f.Prefectures = slices.Clone(f.Prefectures)
	return f
}
