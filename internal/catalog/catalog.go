// Package catalog holds the immutable master tables and content records of
// the case-study catalog. A Catalog is built once from a Dataset and shared
// read-only by every other component.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/devcase/internal/models"
)

// Options controls how a Dataset is turned into a Catalog.
type Options struct {
	// Strict rejects datasets with dangling foreign keys. When false they are
	// kept and reported through Catalog.Issues.
	Strict bool
	// Version labels the catalog, usually a checksum of the source files.
	Version string
}

// Issue is a referential-integrity problem found while building a catalog.
type Issue struct {
	Table string `json:"table"`
	ID    string `json:"id"`
	Field string `json:"field"`
	Ref   string `json:"ref"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s %q does not resolve", i.Table, i.ID, i.Field, i.Ref)
}

// Catalog is the read-only repository of master tables and content records.
// All methods are safe for concurrent use.
type Catalog struct {
	areas        table[models.Area]
	prefectures  table[models.Prefecture]
	categories   table[models.Category]
	systems      table[models.SystemName]
	purposes     table[models.Purpose]
	articleTypes table[models.ArticleType]
	companies    table[models.Company]
	articles     table[models.Article]

	issues  []Issue
	version string
}

// Build validates ds and constructs a Catalog. Slugs are normalised to their
// canonical lowercase form here so that lookups never need to.
func Build(ds Dataset, opts Options) (*Catalog, error) {
	normalize(&ds)

	if err := validateAll(ds); err != nil {
		return nil, err
	}

	c := &Catalog{version: opts.Version}
	var err error
	if c.areas, err = newTable("areas", ds.Areas,
		func(a models.Area) string { return a.Code },
		func(a models.Area) string { return a.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.prefectures, err = newTable("prefectures", ds.Prefectures,
		func(p models.Prefecture) string { return p.Code },
		func(p models.Prefecture) string { return p.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.categories, err = newTable("categories", ds.Categories,
		func(x models.Category) string { return x.ID },
		func(x models.Category) string { return x.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.systems, err = newTable("systems", ds.Systems,
		func(s models.SystemName) string { return s.ID },
		func(s models.SystemName) string { return s.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.purposes, err = newTable("purposes", ds.Purposes,
		func(p models.Purpose) string { return p.ID },
		func(p models.Purpose) string { return p.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.articleTypes, err = newTable("article_types", ds.ArticleTypes,
		func(t models.ArticleType) string { return t.ID },
		func(t models.ArticleType) string { return t.Slug }); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.companies, err = newTable("companies", ds.Companies,
		func(x models.Company) string { return strconv.Itoa(x.ID) }, nil); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if c.articles, err = newTable("articles", ds.Articles,
		func(a models.Article) string { return strconv.Itoa(a.ID) }, nil); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.issues = c.checkReferences()
	if opts.Strict && len(c.issues) > 0 {
		errs := make([]error, len(c.issues))
		for i, iss := range c.issues {
			errs[i] = errors.New(iss.String())
		}
		return nil, fmt.Errorf("catalog: dangling references: %w", errors.Join(errs...))
	}
	return c, nil
}

// NormalizeSlug returns the canonical form of a slug.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalize works on copies so the caller's Dataset is left untouched.
func normalize(ds *Dataset) {
	ds.Areas = slices.Clone(ds.Areas)
	ds.Prefectures = slices.Clone(ds.Prefectures)
	ds.Categories = slices.Clone(ds.Categories)
	ds.Systems = slices.Clone(ds.Systems)
	ds.Purposes = slices.Clone(ds.Purposes)
	ds.ArticleTypes = slices.Clone(ds.ArticleTypes)
	for i := range ds.Areas {
		ds.Areas[i].Slug = NormalizeSlug(ds.Areas[i].Slug)
	}
	for i := range ds.Prefectures {
		ds.Prefectures[i].Slug = NormalizeSlug(ds.Prefectures[i].Slug)
	}
	for i := range ds.Categories {
		ds.Categories[i].Slug = NormalizeSlug(ds.Categories[i].Slug)
	}
	for i := range ds.Systems {
		ds.Systems[i].Slug = NormalizeSlug(ds.Systems[i].Slug)
	}
	for i := range ds.Purposes {
		ds.Purposes[i].Slug = NormalizeSlug(ds.Purposes[i].Slug)
	}
	for i := range ds.ArticleTypes {
		ds.ArticleTypes[i].Slug = NormalizeSlug(ds.ArticleTypes[i].Slug)
	}
}

func validateAll(ds Dataset) error {
	var errs []error
	check := func(table string, i int, v validation.Validatable) {
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", table, i, err))
		}
	}
	for i, x := range ds.Areas {
		check("areas", i, x)
	}
	for i, x := range ds.Prefectures {
		check("prefectures", i, x)
	}
	for i, x := range ds.Categories {
		check("categories", i, x)
	}
	for i, x := range ds.Systems {
		check("systems", i, x)
	}
	for i, x := range ds.Purposes {
		check("purposes", i, x)
	}
	for i, x := range ds.ArticleTypes {
		check("article_types", i, x)
	}
	for i, x := range ds.Companies {
		check("companies", i, x)
	}
	for i, x := range ds.Articles {
		check("articles", i, x)
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: invalid records: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Catalog) checkReferences() []Issue {
	var out []Issue
	if c.areas.len() > 0 {
		for _, p := range c.prefectures.items {
			if _, ok := c.areas.get(p.AreaCode); !ok {
				out = append(out, Issue{Table: "prefectures", ID: p.Code, Field: "area_code", Ref: p.AreaCode})
			}
		}
	}
	for _, s := range c.systems.items {
		if _, ok := c.categories.get(s.CategoryID); !ok {
			out = append(out, Issue{Table: "systems", ID: s.ID, Field: "category_id", Ref: s.CategoryID})
		}
	}
	for _, co := range c.companies.items {
		if _, ok := c.prefectures.get(co.PrefectureCode); !ok {
			out = append(out, Issue{Table: "companies", ID: strconv.Itoa(co.ID), Field: "prefecture_code", Ref: co.PrefectureCode})
		}
	}
	for _, a := range c.articles.items {
		id := strconv.Itoa(a.ID)
		if _, ok := c.CompanyByID(a.CompanyID); !ok {
			out = append(out, Issue{Table: "articles", ID: id, Field: "company_id", Ref: strconv.Itoa(a.CompanyID)})
		}
		if _, ok := c.systems.get(a.SystemID); !ok {
			out = append(out, Issue{Table: "articles", ID: id, Field: "system_id", Ref: a.SystemID})
		}
		if a.PurposeID != "" {
			if _, ok := c.purposes.get(a.PurposeID); !ok {
				out = append(out, Issue{Table: "articles", ID: id, Field: "purpose_id", Ref: a.PurposeID})
			}
		}
		if c.articleTypes.len() > 0 {
			if _, ok := c.ArticleTypeByCode(a.ArticleType); !ok {
				out = append(out, Issue{Table: "articles", ID: id, Field: "article_type", Ref: string(a.ArticleType)})
			}
		}
	}
	return out
}

// Version returns the label the catalog was built with.
func (c *Catalog) Version() string { return c.version }

// Issues returns the referential-integrity problems found at build time.
func (c *Catalog) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

// Areas returns every area in definition order.
func (c *Catalog) Areas() []models.Area { return c.areas.all() }

// AreaByCode looks an area up by code.
func (c *Catalog) AreaByCode(code string) (models.Area, bool) { return c.areas.get(code) }

// AreaBySlug looks an area up by slug.
func (c *Catalog) AreaBySlug(slug string) (models.Area, bool) { return c.areas.getBySlug(slug) }

// Prefectures returns every prefecture in definition order.
func (c *Catalog) Prefectures() []models.Prefecture { return c.prefectures.all() }

// PrefectureByCode looks a prefecture up by its code.
func (c *Catalog) PrefectureByCode(code string) (models.Prefecture, bool) {
	return c.prefectures.get(code)
}

// PrefectureBySlug looks a prefecture up by slug.
func (c *Catalog) PrefectureBySlug(slug string) (models.Prefecture, bool) {
	return c.prefectures.getBySlug(slug)
}

// PrefecturesByArea returns the prefectures of one area.
func (c *Catalog) PrefecturesByArea(areaCode string) []models.Prefecture {
	return c.prefectures.filter(func(p models.Prefecture) bool { return p.AreaCode == areaCode })
}

// Categories returns every category in definition order.
func (c *Catalog) Categories() []models.Category { return c.categories.all() }

// CategoryByID looks a category up by id.
func (c *Catalog) CategoryByID(id string) (models.Category, bool) { return c.categories.get(id) }

// CategoryBySlug looks a category up by slug.
func (c *Catalog) CategoryBySlug(slug string) (models.Category, bool) {
	return c.categories.getBySlug(slug)
}

// Systems returns every system in definition order.
func (c *Catalog) Systems() []models.SystemName { return c.systems.all() }

// SystemByID looks a system up by id.
func (c *Catalog) SystemByID(id string) (models.SystemName, bool) { return c.systems.get(id) }

// SystemBySlug looks a system up by slug.
func (c *Catalog) SystemBySlug(slug string) (models.SystemName, bool) {
	return c.systems.getBySlug(slug)
}

// SystemsByCategory returns the systems belonging to a category.
func (c *Catalog) SystemsByCategory(categoryID string) []models.SystemName {
	return c.systems.filter(func(s models.SystemName) bool { return s.CategoryID == categoryID })
}

// Purposes returns every purpose in definition order.
func (c *Catalog) Purposes() []models.Purpose { return c.purposes.all() }

// PurposeByID looks a purpose up by id.
func (c *Catalog) PurposeByID(id string) (models.Purpose, bool) { return c.purposes.get(id) }

// PurposeBySlug looks a purpose up by slug.
func (c *Catalog) PurposeBySlug(slug string) (models.Purpose, bool) {
	return c.purposes.getBySlug(slug)
}

// ArticleTypes returns every article type in definition order.
func (c *Catalog) ArticleTypes() []models.ArticleType { return c.articleTypes.all() }

// ArticleTypeByID looks an article type up by its two-digit id.
func (c *Catalog) ArticleTypeByID(id string) (models.ArticleType, bool) {
	return c.articleTypes.get(id)
}

// ArticleTypeBySlug looks an article type up by slug.
func (c *Catalog) ArticleTypeBySlug(slug string) (models.ArticleType, bool) {
	return c.articleTypes.getBySlug(slug)
}

// ArticleTypeByCode looks an article type up by its canonical code.
func (c *Catalog) ArticleTypeByCode(code models.ArticleTypeCode) (models.ArticleType, bool) {
	return c.articleTypes.get(code.TypeID())
}

// Companies returns every company in definition order.
func (c *Catalog) Companies() []models.Company { return c.companies.all() }

// CompanyByID looks a company up by id.
func (c *Catalog) CompanyByID(id int) (models.Company, bool) {
	return c.companies.get(strconv.Itoa(id))
}

// CompaniesByPrefecture returns the companies located in a prefecture.
func (c *Catalog) CompaniesByPrefecture(code string) []models.Company {
	return c.companies.filter(func(co models.Company) bool { return co.PrefectureCode == code })
}

// Articles returns every article in definition order.
func (c *Catalog) Articles() []models.Article { return c.articles.all() }

// ArticleByID looks an article up by id.
func (c *Catalog) ArticleByID(id int) (models.Article, bool) {
	return c.articles.get(strconv.Itoa(id))
}

// CompanyOf resolves the company of an article.
func (c *Catalog) CompanyOf(a models.Article) (models.Company, bool) {
	return c.CompanyByID(a.CompanyID)
}

// CategoryOf derives the category of an article through its system. This is
// the only place the article→category join is spelled out.
func (c *Catalog) CategoryOf(a models.Article) (models.Category, bool) {
	s, ok := c.systems.get(a.SystemID)
	if !ok {
		return models.Category{}, false
	}
	return c.categories.get(s.CategoryID)
}

// CategoryIDOf returns the derived category id of an article, or "".
func (c *Catalog) CategoryIDOf(a models.Article) string {
	cat, ok := c.CategoryOf(a)
	if !ok {
		return ""
	}
	return cat.ID
}

// PrefectureOf resolves the prefecture of a company.
func (c *Catalog) PrefectureOf(co models.Company) (models.Prefecture, bool) {
	return c.prefectures.get(co.PrefectureCode)
}

// ArticlePrefecture resolves an article's prefecture through its company.
func (c *Catalog) ArticlePrefecture(a models.Article) (models.Prefecture, bool) {
	co, ok := c.CompanyOf(a)
	if !ok {
		return models.Prefecture{}, false
	}
	return c.PrefectureOf(co)
}
