package search_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/devcase/internal/search"
	"github.com/starford/devcase/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestApplyFilters_ToggleResetsPage(t *testing.T) {
	s := search.NewState()
	s.Page = 3

	next := search.ApplyFilters(s, search.Patch{ToggleCategory: "2"})
	if diff := cmp.Diff([]string{"2"}, next.Filters.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	if next.Page != 1 {
		t.Errorf("page = %d, want 1", next.Page)
	}

	back := search.ApplyFilters(next, search.Patch{ToggleCategory: "2"})
	if len(back.Filters.Categories) != 0 {
		t.Errorf("second toggle should remove, got %v", back.Filters.Categories)
	}
}

func TestApplyFilters_DoesNotModifyInput(t *testing.T) {
	s := search.NewState()
	s.Filters.Prefectures = []string{"13", "27"}

	_ = search.ApplyFilters(s, search.Patch{TogglePrefecture: "13"})
	if diff := cmp.Diff([]string{"13", "27"}, s.Filters.Prefectures); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestApplyFilters_Page(t *testing.T) {
	s := search.NewState()

	next := search.ApplyFilters(s, search.Patch{Page: ptr(4)})
	if next.Page != 4 {
		t.Errorf("page = %d, want 4", next.Page)
	}
	next = search.ApplyFilters(next, search.Patch{Page: ptr(0)})
	if next.Page != 1 {
		t.Errorf("page = %d, want 1", next.Page)
	}

	// A filter change in the same patch wins over the explicit page.
	next = search.ApplyFilters(search.NewState(), search.Patch{Keyword: ptr("erp"), Page: ptr(5)})
	if next.Page != 1 || next.Filters.Keyword != "erp" {
		t.Errorf("state = %+v", next)
	}
}

func TestApplyFilters_UnchangedKeywordKeepsPage(t *testing.T) {
	s := search.NewState()
	s.Filters.Keyword = "cloud"
	s.Page = 2
	next := search.ApplyFilters(s, search.Patch{Keyword: ptr("cloud")})
	if next.Page != 2 {
		t.Errorf("page = %d, want 2", next.Page)
	}
}

func TestApplyFilters_Sort(t *testing.T) {
	s := search.NewState()
	s.Page = 2

	next := search.ApplyFilters(s, search.Patch{Sort: ptr(search.SortViewCount)})
	if next.Sort != search.SortViewCount || next.Page != 1 {
		t.Errorf("state = %+v", next)
	}
	next = search.ApplyFilters(next, search.Patch{Sort: ptr(search.SortKey("title"))})
	if next.Sort != search.SortViewCount {
		t.Errorf("invalid sort applied: %q", next.Sort)
	}
}

func TestApplyFilters_Reset(t *testing.T) {
	s := search.State{
		Filters: search.Filters{Keyword: "x", Categories: []string{"1"}, Company: "acme"},
		Sort:    search.SortViewCount,
		Page:    3,
	}
	next := search.ApplyFilters(s, search.Patch{Reset: true, ToggleArticleType: "02"})
	want := search.State{
		Filters: search.Filters{ArticleTypes: []string{"02"}},
		Sort:    search.SortViewCount,
		Page:    1,
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
}

func TestApplyFilters_DrivesSearch(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)

	s := search.NewState()
	s = search.ApplyFilters(s, search.Patch{ToggleCategory: "2"})
	s = search.ApplyFilters(s, search.Patch{ToggleCategory: "3"})
	s = search.ApplyFilters(s, search.Patch{ToggleArticleType: "01"})

	got := ids(e.All(s.Filters, s.Sort))
	if diff := cmp.Diff([]int{2, 5}, got); diff != "" {
		t.Errorf("search (-want +got):\n%s", diff)
	}
}

func TestPaginate(t *testing.T) {
	c := testutil.TestCatalog(t)
	all := c.Articles()

	p := search.Paginate(all, 2, 4)
	if diff := cmp.Diff([]int{5, 6}, ids(p.Items)); diff != "" {
		t.Errorf("page 2 (-want +got):\n%s", diff)
	}
	if p.TotalPages != 2 || p.Total != 6 || !p.HasPrev || p.HasNext {
		t.Errorf("page meta = %+v", p)
	}

	if p := search.Paginate(all, 9, 4); p.Page != 2 {
		t.Errorf("clamped page = %d, want 2", p.Page)
	}
	if p := search.Paginate(all, -3, 4); p.Page != 1 || p.HasPrev {
		t.Errorf("clamped page = %+v", p)
	}
	if p := search.Paginate(all, 1, 0); p.PerPage != search.DefaultPerPage || len(p.Items) != 6 {
		t.Errorf("default per page = %+v", p)
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := search.Paginate(nil, 3, 10)
	if p.Page != 1 || p.TotalPages != 1 || p.Total != 0 {
		t.Errorf("empty page = %+v", p)
	}
	if p.Items == nil {
		t.Error("items should be an empty slice")
	}
}

func TestParseQuery(t *testing.T) {
	c := testutil.TestCatalog(t)
	v := url.Values{
		"keyword":    {"cloud"},
		"category":   {"infrastructure", "nope"},
		"type":       {"interview"},
		"prefecture": {"tokyo"},
		"page":       {"2"},
		"sort":       {"views"},
	}
	st, ignored := search.ParseQuery(v, c)

	want := search.State{
		Filters: search.Filters{
			Keyword:      "cloud",
			Categories:   []string{"2"},
			ArticleTypes: []string{"02"},
			Prefectures:  []string{"13"},
		},
		Sort: search.SortViewCount,
		Page: 2,
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"category=nope"}, ignored); diff != "" {
		t.Errorf("ignored (-want +got):\n%s", diff)
	}
}

func TestParseQuery_ArticleTypeAliasAndBadPage(t *testing.T) {
	c := testutil.TestCatalog(t)
	st, ignored := search.ParseQuery(url.Values{"articleType": {"survey"}, "page": {"abc"}}, c)
	if diff := cmp.Diff([]string{"04"}, st.Filters.ArticleTypes); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	if st.Page != 1 {
		t.Errorf("page = %d, want 1", st.Page)
	}
	if diff := cmp.Diff([]string{"page=abc"}, ignored); diff != "" {
		t.Errorf("ignored (-want +got):\n%s", diff)
	}
}

func TestEncodeQuery_RoundTrip(t *testing.T) {
	c := testutil.TestCatalog(t)
	st := search.State{
		Filters: search.Filters{
			Keyword:     "erp",
			Categories:  []string{"3"},
			Systems:     []string{"30"},
			Prefectures: []string{"27"},
			Company:     "kansai",
		},
		Sort: search.SortViewCount,
		Page: 3,
	}
	v := search.EncodeQuery(st, c)
	if v.Get("category") != "business-systems" || v.Get("prefecture") != "osaka" {
		t.Errorf("encoded = %v", v)
	}
	back, ignored := search.ParseQuery(v, c)
	if len(ignored) != 0 {
		t.Errorf("ignored = %v", ignored)
	}
	if diff := cmp.Diff(st, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestEncodeQuery_DefaultsOmitted(t *testing.T) {
	c := testutil.TestCatalog(t)
	if v := search.EncodeQuery(search.NewState(), c); len(v) != 0 {
		t.Errorf("encoded default state = %v, want empty", v)
	}
}
