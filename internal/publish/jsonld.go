package publish

import (
	"strings"

	"github.com/starford/devcase/internal/lookup"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/route"
)

const schemaContext = "https://schema.org"

// ListItem is a schema.org ListItem.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
	URL      string `json:"url,omitempty"`
}

// BreadcrumbList is a schema.org BreadcrumbList.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	Path string
}

// ItemList is a schema.org ItemList.
type ItemList struct {
	Type            string     `json:"@type"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// CollectionPage is a schema.org CollectionPage wrapping an ItemList.
type CollectionPage struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	MainEntity  ItemList `json:"mainEntity"`
}

// Organization is a schema.org Organization.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Article is a schema.org Article.
type Article struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description,omitempty"`
	Image            string       `json:"image,omitempty"`
	DatePublished    string       `json:"datePublished"`
	Author           Organization `json:"author"`
	Publisher        Organization `json:"publisher"`
	MainEntityOfPage string       `json:"mainEntityOfPage,omitempty"`
	ArticleSection   string       `json:"articleSection,omitempty"`
	Keywords         string       `json:"keywords,omitempty"`
}

// Breadcrumbs builds a BreadcrumbList from a trail of pages.
func (g *Generator) Breadcrumbs(crumbs ...Crumb) BreadcrumbList {
	items := make([]ListItem, len(crumbs))
	for i, c := range crumbs {
		items[i] = ListItem{Type: "ListItem", Position: i + 1, Name: c.Name, Item: g.URL(c.Path)}
	}
	return BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

// ArticleBreadcrumbs is the trail home → category → article.
func (g *Generator) ArticleBreadcrumbs(ctx lookup.ArticleContext, siteName string) BreadcrumbList {
	crumbs := []Crumb{
		{Name: siteName, Path: route.HomePath},
		{Name: ctx.Category.Name, Path: route.CategoryPath(ctx.Category.Slug)},
	}
	if canon, ok := g.resolver.ArticleCanonical(ctx.Article); ok {
		crumbs = append(crumbs, Crumb{Name: ctx.Article.Title, Path: canon.Path})
	}
	return g.Breadcrumbs(crumbs...)
}

// Collection builds the CollectionPage of a listing.
func (g *Generator) Collection(name, description, path string, articles []models.Article) CollectionPage {
	items := make([]ListItem, 0, len(articles))
	for _, a := range articles {
		item := ListItem{Type: "ListItem", Position: len(items) + 1, Name: a.Title}
		if canon, ok := g.resolver.ArticleCanonical(a); ok {
			item.URL = g.URL(canon.Path)
		}
		items = append(items, item)
	}
	return CollectionPage{
		Context:     schemaContext,
		Type:        "CollectionPage",
		Name:        name,
		Description: description,
		URL:         g.URL(path),
		MainEntity: ItemList{
			Type:            "ItemList",
			NumberOfItems:   len(items),
			ItemListElement: items,
		},
	}
}

// ArticleLD builds the Article object of a resolved article.
func (g *Generator) ArticleLD(ctx lookup.ArticleContext, siteName string) Article {
	a := ctx.Article
	out := Article{
		Context:        schemaContext,
		Type:           "Article",
		Headline:       a.Title,
		Description:    a.Description,
		Image:          a.ThumbnailURL,
		DatePublished:  a.PublishedAt,
		Author:         Organization{Type: "Organization", Name: ctx.Company.Name, URL: ctx.Company.WebsiteURL},
		Publisher:      Organization{Type: "Organization", Name: siteName, URL: g.URL(route.HomePath)},
		ArticleSection: ctx.Category.Name,
		Keywords:       strings.Join(a.Keywords, ","),
	}
	if canon, ok := g.resolver.ArticleCanonical(a); ok {
		out.MainEntityOfPage = g.URL(canon.Path)
	}
	return out
}
