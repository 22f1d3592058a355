package search_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/search"
	"github.com/starford/devcase/internal/testutil"
)

func ids(articles []models.Article) []int {
	out := make([]int, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

// Articles 1 and 2 of the fixture are the two-article example: 1 is an
// interview in category 2 with 500 views, 2 is a newer process article in
// category 3 with 900 views.
func TestSearch_TwoArticleExample(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)
	all := c.Articles()
	ab := []models.Article{all[0], all[1]}

	got := ids(e.Search(ab, search.Filters{ArticleTypes: []string{"02"}}, search.SortViewCount))
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("type filter (-want +got):\n%s", diff)
	}

	got = ids(e.Search(ab, search.Filters{}, search.SortViewCount))
	if diff := cmp.Diff([]int{2, 1}, got); diff != "" {
		t.Errorf("no filter by views (-want +got):\n%s", diff)
	}

	got = ids(e.Search(ab, search.Filters{Categories: []string{"2", "3"}}, search.SortPublishedAt))
	if diff := cmp.Diff([]int{2, 1}, got); diff != "" {
		t.Errorf("categories by date (-want +got):\n%s", diff)
	}
}

func TestSearch_AndAcrossOrWithin(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)

	got := ids(e.All(search.Filters{Categories: []string{"2", "3"}, ArticleTypes: []string{"02"}}, search.SortPublishedAt))
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("OR within categories (-want +got):\n%s", diff)
	}

	got = ids(e.All(search.Filters{Categories: []string{"2"}, ArticleTypes: []string{"01"}}, search.SortPublishedAt))
	for _, id := range got {
		if id == 1 {
			t.Error("article 1 is an interview and must be excluded by a process filter")
		}
	}
	if diff := cmp.Diff([]int{5}, got); diff != "" {
		t.Errorf("AND across filters (-want +got):\n%s", diff)
	}
}

func TestSearch_SortStable(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)

	byViews := e.All(search.Filters{}, search.SortViewCount)
	if diff := cmp.Diff([]int{2, 4, 6, 1, 3, 5}, ids(byViews)); diff != "" {
		t.Errorf("by views (-want +got):\n%s", diff)
	}
	for i := 1; i < len(byViews); i++ {
		if byViews[i].ViewCount > byViews[i-1].ViewCount {
			t.Fatalf("view counts increase at %d", i)
		}
	}

	byDate := e.All(search.Filters{}, search.SortPublishedAt)
	if diff := cmp.Diff([]int{2, 5, 4, 1, 3, 6}, ids(byDate)); diff != "" {
		t.Errorf("by date (-want +got):\n%s", diff)
	}
}

func TestSearch_UnknownSortFallsBackToDate(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)
	got := ids(e.All(search.Filters{}, "title"))
	if diff := cmp.Diff([]int{2, 5, 4, 1, 3, 6}, got); diff != "" {
		t.Errorf("unknown sort (-want +got):\n%s", diff)
	}
}

func TestSearch_Idempotent(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)
	f := search.Filters{Keyword: "cloud", Prefectures: []string{"13", "14"}}
	first := e.All(f, search.SortViewCount)
	second := e.All(f, search.SortViewCount)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated search differs (-first +second):\n%s", diff)
	}
}

func TestSearch_Monotonic(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)
	pairs := []struct {
		loose, strict search.Filters
	}{
		{search.Filters{}, search.Filters{Categories: []string{"1"}}},
		{search.Filters{Categories: []string{"1"}}, search.Filters{Categories: []string{"1"}, ArticleTypes: []string{"02"}}},
		{search.Filters{Keyword: "cloud"}, search.Filters{Keyword: "cloud", Prefectures: []string{"13"}}},
		{search.Filters{Company: "acme"}, search.Filters{Company: "acme", Keyword: "survey"}},
	}
	for i, p := range pairs {
		loose := len(e.All(p.loose, search.SortPublishedAt))
		strict := len(e.All(p.strict, search.SortPublishedAt))
		if strict > loose {
			t.Errorf("pair %d: stricter filters returned %d > %d", i, strict, loose)
		}
	}
}

func TestSearch_KeywordCaseInsensitive(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)
	got := ids(e.All(search.Filters{Keyword: "  CLOUD "}, search.SortPublishedAt))
	if diff := cmp.Diff([]int{5, 1}, got); diff != "" {
		t.Errorf("keyword (-want +got):\n%s", diff)
	}
	if n := len(e.All(search.Filters{Keyword: "   "}, search.SortPublishedAt)); n != 6 {
		t.Errorf("blank keyword matched %d, want 6", n)
	}
}

func TestSearch_CompanyAndPrefecture(t *testing.T) {
	c := testutil.TestCatalog(t)
	e := search.New(c)

	got := ids(e.All(search.Filters{Company: "ACME"}, search.SortPublishedAt))
	if diff := cmp.Diff([]int{4, 1}, got); diff != "" {
		t.Errorf("company (-want +got):\n%s", diff)
	}
	got = ids(e.All(search.Filters{Prefectures: []string{"27"}}, search.SortPublishedAt))
	if diff := cmp.Diff([]int{2, 6}, got); diff != "" {
		t.Errorf("prefecture (-want +got):\n%s", diff)
	}
	got = ids(e.All(search.Filters{Systems: []string{"10"}}, search.SortViewCount))
	if diff := cmp.Diff([]int{6, 3}, got); diff != "" {
		t.Errorf("system (-want +got):\n%s", diff)
	}
}

func TestSearch_FailsClosedOnDanglingReferences(t *testing.T) {
	c := testutil.DanglingCatalog(t)
	e := search.New(c)

	got := ids(e.All(search.Filters{Categories: []string{"1"}}, search.SortViewCount))
	if diff := cmp.Diff([]int{6, 3, 99}, got); diff != "" {
		t.Errorf("category with dangling system (-want +got):\n%s", diff)
	}
	got = ids(e.All(search.Filters{Prefectures: []string{"13"}}, search.SortViewCount))
	if diff := cmp.Diff([]int{4, 1, 98}, got); diff != "" {
		t.Errorf("prefecture with dangling company (-want +got):\n%s", diff)
	}
	got = ids(e.All(search.Filters{Company: "o"}, search.SortViewCount))
	for _, id := range got {
		if id == 99 {
			t.Error("article without a company matched a company filter")
		}
	}
}

func TestSearch_EmptyResultIsNotNil(t *testing.T) {
	c := testutil.TestCatalog(t)
	got := search.New(c).All(search.Filters{Keyword: "no such title"}, search.SortPublishedAt)
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestSearch_DoesNotReorderInput(t *testing.T) {
	c := testutil.TestCatalog(t)
	in := c.Articles()
	_ = search.New(c).Search(in, search.Filters{}, search.SortViewCount)
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, ids(in)); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
}
