package catalog

import (
	"strings"
	"testing"

	"github.com/starford/devcase/internal/catalog/seed"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/storage"
)

func smallDataset() Dataset {
	return Dataset{
		Areas: []models.Area{{Code: "2", Name: "関東", Slug: "kanto"}},
		Prefectures: []models.Prefecture{
			{Code: "13", Name: "東京都", Slug: "Tokyo ", AreaCode: "2"},
			{Code: "14", Name: "神奈川県", Slug: "kanagawa", AreaCode: "2"},
		},
		Categories: []models.Category{
			{ID: "1", Name: "システム開発", Slug: "System-Development"},
			{ID: "2", Name: "インフラ", Slug: "infrastructure"},
		},
		Systems: []models.SystemName{
			{ID: "10", Name: "基幹", Slug: "erp", CategoryID: "1"},
			{ID: "20", Name: "クラウド移行", Slug: "cloud-migration", CategoryID: "2"},
			{ID: "11", Name: "CRM", Slug: "crm", CategoryID: "1"},
		},
		Purposes: []models.Purpose{{ID: "1", Name: "効率化", Slug: "efficiency"}},
		ArticleTypes: []models.ArticleType{
			{ID: "01", Code: models.ArticleTypeProcess, Name: "開発プロセス", Slug: "process"},
			{ID: "02", Code: models.ArticleTypeInterview, Name: "インタビュー", Slug: "interview"},
		},
		Companies: []models.Company{
			{ID: 10, Name: "Acme", PrefectureCode: "13"},
			{ID: 11, Name: "Beta", PrefectureCode: "14"},
		},
		Articles: []models.Article{
			{ID: 1, CompanyID: 10, SystemID: "20", Title: "Cloud", PublishedAt: "2024-01-10", ArticleType: models.ArticleTypeInterview},
			{ID: 2, CompanyID: 11, SystemID: "10", Title: "ERP", PublishedAt: "2024-03-01", ArticleType: models.ArticleTypeProcess},
		},
	}
}

func TestBuild_NormalizesSlugs(t *testing.T) {
	ds := smallDataset()
	c, err := Build(ds, Options{Strict: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := c.PrefectureBySlug("tokyo"); !ok {
		t.Error("prefecture slug should be normalised to lowercase")
	}
	if cat, ok := c.CategoryBySlug("system-development"); !ok || cat.ID != "1" {
		t.Errorf("CategoryBySlug = %+v, %v", cat, ok)
	}
	if ds.Categories[0].Slug != "System-Development" {
		t.Error("Build must not modify the caller's dataset")
	}
}

func TestBuild_SlugLookupIsCaseSensitiveAfterIngestion(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.CategoryBySlug("System-Development"); ok {
		t.Error("accessors match the canonical slug only")
	}
}

func TestBuild_DuplicateSlugRejected(t *testing.T) {
	ds := smallDataset()
	ds.Systems = append(ds.Systems, models.SystemName{ID: "99", Name: "dup", Slug: "erp", CategoryID: "1"})
	_, err := Build(ds, Options{})
	if err == nil || !strings.Contains(err.Error(), "duplicate slug") {
		t.Fatalf("err = %v, want duplicate slug", err)
	}
}

func TestBuild_DuplicateIDRejected(t *testing.T) {
	ds := smallDataset()
	ds.Articles = append(ds.Articles, ds.Articles[0])
	_, err := Build(ds, Options{})
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("err = %v, want duplicate id", err)
	}
}

func TestBuild_InvalidRecordRejected(t *testing.T) {
	ds := smallDataset()
	ds.Articles[0].ViewCount = -1
	ds.Articles[1].PublishedAt = "March 1st"
	_, err := Build(ds, Options{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "articles[0]") || !strings.Contains(msg, "articles[1]") {
		t.Errorf("error should name both records: %v", err)
	}
}

func TestBuild_DanglingReferences(t *testing.T) {
	ds := smallDataset()
	ds.Articles = append(ds.Articles, models.Article{
		ID: 3, CompanyID: 999, SystemID: "77", Title: "Orphan", PublishedAt: "2024-01-01",
		ArticleType: models.ArticleTypeProcess,
	})

	if _, err := Build(ds, Options{Strict: true}); err == nil {
		t.Fatal("strict build should reject dangling references")
	}

	c, err := Build(ds, Options{Strict: false})
	if err != nil {
		t.Fatalf("lenient build: %v", err)
	}
	issues := c.Issues()
	if len(issues) != 2 {
		t.Fatalf("issues = %v, want 2", issues)
	}
	if issues[0].Field != "company_id" || issues[1].Field != "system_id" {
		t.Errorf("issues = %v", issues)
	}
}

func TestAccessors_Misses(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.CategoryByID("42"); ok {
		t.Error("unknown category id should miss")
	}
	if _, ok := c.ArticleByID(0); ok {
		t.Error("article 0 should miss")
	}
	if _, ok := c.CompanyByID(-1); ok {
		t.Error("company -1 should miss")
	}
	if _, ok := c.SystemBySlug(""); ok {
		t.Error("empty slug should miss")
	}
}

func TestAccessors_DefinitionOrderAndCopies(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	systems := c.Systems()
	if systems[0].ID != "10" || systems[1].ID != "20" || systems[2].ID != "11" {
		t.Errorf("systems not in definition order: %+v", systems)
	}
	systems[0].Name = "mutated"
	if s, _ := c.SystemByID("10"); s.Name == "mutated" {
		t.Error("All accessors must return copies")
	}
}

func TestSystemsByCategory(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	got := c.SystemsByCategory("1")
	if len(got) != 2 || got[0].Slug != "erp" || got[1].Slug != "crm" {
		t.Errorf("SystemsByCategory = %+v", got)
	}
	if got := c.SystemsByCategory("nope"); len(got) != 0 {
		t.Errorf("unknown parent should be empty, got %+v", got)
	}
}

func TestCategoryOf_DerivedThroughSystem(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.ArticleByID(1)
	cat, ok := c.CategoryOf(a)
	if !ok || cat.ID != "2" {
		t.Errorf("CategoryOf = %+v, %v; want category 2", cat, ok)
	}
	if got := c.CategoryIDOf(models.Article{SystemID: "missing"}); got != "" {
		t.Errorf("CategoryIDOf dangling = %q, want empty", got)
	}
}

func TestArticlePrefecture(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.ArticleByID(2)
	p, ok := c.ArticlePrefecture(a)
	if !ok || p.Slug != "kanagawa" {
		t.Errorf("ArticlePrefecture = %+v, %v", p, ok)
	}
}

func TestArticleTypeByCode(t *testing.T) {
	c, err := Build(smallDataset(), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	at, ok := c.ArticleTypeByCode(models.ArticleTypeInterview)
	if !ok || at.ID != "02" {
		t.Errorf("ArticleTypeByCode = %+v, %v", at, ok)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte("categories:\n  - id: \"1\"\n    nmae: typo\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecode_MultipleDocuments(t *testing.T) {
	ds, err := Decode([]byte("purposes:\n  - {id: \"1\", name: a, slug: a}\n---\npurposes:\n  - {id: \"2\", name: b, slug: b}\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ds.Purposes) != 2 {
		t.Errorf("purposes = %d, want 2", len(ds.Purposes))
	}
}

func TestLoad_Seed(t *testing.T) {
	c, err := Load(storage.NewEmbedded(seed.Files), Options{Strict: true})
	if err != nil {
		t.Fatalf("Load seed: %v", err)
	}
	if n := len(c.Prefectures()); n != 47 {
		t.Errorf("prefectures = %d, want 47", n)
	}
	if n := len(c.Areas()); n != 7 {
		t.Errorf("areas = %d, want 7", n)
	}
	if n := len(c.ArticleTypes()); n != 4 {
		t.Errorf("article types = %d, want 4", n)
	}
	if len(c.Issues()) != 0 {
		t.Errorf("seed has issues: %v", c.Issues())
	}
	if c.Version() == "" {
		t.Error("version should be set from file checksums")
	}
	if _, ok := c.CategoryBySlug("system-development"); !ok {
		t.Error("seed should contain system-development")
	}
	total := 0
	for _, a := range c.Areas() {
		total += len(c.PrefecturesByArea(a.Code))
	}
	if total != 47 {
		t.Errorf("prefectures grouped by area = %d, want 47", total)
	}
}

func TestStore_Swap(t *testing.T) {
	a, _ := Build(smallDataset(), Options{Version: "a"})
	b, _ := Build(smallDataset(), Options{Version: "b"})
	s := NewStore(a)
	if s.Current().Version() != "a" {
		t.Fatal("initial version")
	}
	prev := s.Swap(b)
	if prev.Version() != "a" || s.Current().Version() != "b" {
		t.Errorf("swap: prev=%s cur=%s", prev.Version(), s.Current().Version())
	}
}
