// Package models defines the catalog domain types for devcase.
package models

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DateLayout is the layout of Article.PublishedAt.
const DateLayout = "2006-01-02"

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugRules = []validation.Rule{
	validation.Required,
	validation.Match(slugRe).Error("must be a lowercase roman slug"),
}

// Area groups prefectures into one of the seven regions.
type Area struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	Slug string `yaml:"slug" json:"slug"`
}

// Validate validates the area record.
func (a Area) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Code, validation.Required),
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Slug, slugRules...),
	)
}

// Prefecture is one of the 47 prefectures. Code is its two-digit JIS code.
type Prefecture struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Slug     string `yaml:"slug" json:"slug"`
	AreaCode string `yaml:"area_code" json:"areaCode"`
}

// Validate validates the prefecture record.
func (p Prefecture) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Code, validation.Required, validation.Length(2, 2), is.Digit),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Slug, slugRules...),
		validation.Field(&p.AreaCode, validation.Required),
	)
}

// Category is a top-level article category.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Slug        string `yaml:"slug" json:"slug"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Validate validates the category record.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Slug, slugRules...),
	)
}

// SystemName is a kind of system built in a case study. It belongs to one Category.
type SystemName struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Slug        string `yaml:"slug" json:"slug"`
	Description string `yaml:"description" json:"description,omitempty"`
	CategoryID  string `yaml:"category_id" json:"categoryId"`
}

// Validate validates the system record.
func (s SystemName) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Slug, slugRules...),
		validation.Field(&s.CategoryID, validation.Required),
	)
}

// Purpose is the business goal a project was run for.
type Purpose struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Slug        string `yaml:"slug" json:"slug"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Validate validates the purpose record.
func (p Purpose) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Slug, slugRules...),
	)
}

// ArticleTypeCode is the canonical code of an article type.
type ArticleTypeCode string

// Article type codes.
const (
	ArticleTypeProcess     ArticleTypeCode = "process"
	ArticleTypeInterview   ArticleTypeCode = "interview"
	ArticleTypeDeliverable ArticleTypeCode = "deliverable"
	ArticleTypeSurvey      ArticleTypeCode = "survey"
)

// ArticleTypeCodes lists every code in id order.
var ArticleTypeCodes = []ArticleTypeCode{
	ArticleTypeProcess,
	ArticleTypeInterview,
	ArticleTypeDeliverable,
	ArticleTypeSurvey,
}

var articleTypeIDs = map[ArticleTypeCode]string{
	ArticleTypeProcess:     "01",
	ArticleTypeInterview:   "02",
	ArticleTypeDeliverable: "03",
	ArticleTypeSurvey:      "04",
}

// TypeID returns the two-digit id of the code, or "" for an unknown code.
func (c ArticleTypeCode) TypeID() string {
	return articleTypeIDs[c]
}

// ArticleType is the master record for an article type.
type ArticleType struct {
	ID          string          `yaml:"id" json:"id"`
	Code        ArticleTypeCode `yaml:"code" json:"code"`
	Name        string          `yaml:"name" json:"name"`
	Slug        string          `yaml:"slug" json:"slug"`
	Description string          `yaml:"description" json:"description,omitempty"`
}

// Validate validates the article type record. The id must agree with the
// fixed code mapping.
func (t ArticleType) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Code, validation.Required, validation.In(anyCodes()...)),
		validation.Field(&t.ID, validation.Required, validation.In(t.Code.TypeID()).Error("does not match code")),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Slug, slugRules...),
	)
}

// Scale is a size bucket shared by project scale and company headcount.
type Scale string

// Scales.
const (
	ScaleSmall      Scale = "small"
	ScaleMedium     Scale = "medium"
	ScaleLarge      Scale = "large"
	ScaleEnterprise Scale = "enterprise"
)

// Article is a case-study record. Its category is derived through SystemID.
type Article struct {
	ID              int             `yaml:"id" json:"id"`
	CompanyID       int             `yaml:"company_id" json:"companyId"`
	SystemID        string          `yaml:"system_id" json:"systemId"`
	PurposeID       string          `yaml:"purpose_id,omitempty" json:"purposeId,omitempty"`
	Title           string          `yaml:"title" json:"title"`
	Description     string          `yaml:"description" json:"description"`
	SourceURL       string          `yaml:"source_url,omitempty" json:"sourceUrl,omitempty"`
	ThumbnailURL    string          `yaml:"thumbnail_url" json:"thumbnailUrl"`
	Keywords        []string        `yaml:"keywords" json:"keywords"`
	TechStack       []string        `yaml:"tech_stack,omitempty" json:"techStack,omitempty"`
	PublishedAt     string          `yaml:"published_at" json:"publishedAt"`
	ViewCount       int             `yaml:"view_count" json:"viewCount"`
	PopularityScore float64         `yaml:"popularity_score" json:"popularityScore"`
	ArticleType     ArticleTypeCode `yaml:"article_type" json:"articleType"`
	ProjectScale    Scale           `yaml:"project_scale" json:"projectScale"`
	CustomerName    string          `yaml:"customer_name,omitempty" json:"customerName,omitempty"`
}

// Validate validates the article record.
func (a Article) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required, validation.Min(1)),
		validation.Field(&a.CompanyID, validation.Required, validation.Min(1)),
		validation.Field(&a.SystemID, validation.Required),
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.SourceURL, is.URL),
		validation.Field(&a.PublishedAt, validation.Required, validation.Date(DateLayout)),
		validation.Field(&a.ViewCount, validation.Min(0)),
		validation.Field(&a.PopularityScore, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&a.ArticleType, validation.Required, validation.In(anyCodes()...)),
		validation.Field(&a.ProjectScale, validation.In(anyScales()...)),
	)
}

// Published parses PublishedAt. Validated records always parse.
func (a Article) Published() time.Time {
	t, _ := time.Parse(DateLayout, a.PublishedAt)
	return t
}

// Company is a development-company profile. The prefecture name is derived
// from PrefectureCode.
type Company struct {
	ID              int    `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description" json:"description"`
	LogoURL         string `yaml:"logo_url" json:"logoUrl"`
	WebsiteURL      string `yaml:"website_url,omitempty" json:"websiteUrl,omitempty"`
	Location        string `yaml:"location" json:"location"`
	PrefectureCode  string `yaml:"prefecture_code" json:"prefectureCode"`
	EstablishedYear int    `yaml:"established_year" json:"establishedYear"`
	EmployeeRange   Scale  `yaml:"employee_range" json:"employeeRange"`
}

// Validate validates the company record.
func (c Company) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required, validation.Min(1)),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.WebsiteURL, is.URL),
		validation.Field(&c.PrefectureCode, validation.Required),
		validation.Field(&c.EstablishedYear, validation.Min(1800)),
		validation.Field(&c.EmployeeRange, validation.In(anyScales()...)),
	)
}

// SourceFile describes one data file backing the catalog.
type SourceFile struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

func anyCodes() []any {
	out := make([]any, len(ArticleTypeCodes))
	for i, c := range ArticleTypeCodes {
		out[i] = c
	}
	return out
}

func anyScales() []any {
	return []any{ScaleSmall, ScaleMedium, ScaleLarge, ScaleEnterprise}
}
