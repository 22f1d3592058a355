// Package publish generates the crawler-facing outputs of the site: the
// sitemap, robots.txt and JSON-LD structured data.
package publish

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/route"
)

// DefaultFallbackPrefecture is substituted for articles whose prefecture
// cannot be resolved.
const DefaultFallbackPrefecture = "tokyo"

// Change frequencies.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// Entry is one sitemap URL.
type Entry struct {
	Loc        string  `json:"loc"`
	LastMod    string  `json:"lastmod"`
	ChangeFreq string  `json:"changefreq"`
	Priority   float64 `json:"priority"`
}

// Fallback records an article published under the fallback prefecture.
type Fallback struct {
	ArticleID  int    `json:"articleId"`
	CompanyID  int    `json:"companyId"`
	Prefecture string `json:"prefecture"`
}

// Skip records a record left out of the sitemap.
type Skip struct {
	Kind   string `json:"kind"`
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// Report is the result of a sitemap run.
type Report struct {
	Entries   []Entry    `json:"entries"`
	Fallbacks []Fallback `json:"fallbacks"`
	Skipped   []Skip     `json:"skipped"`
}

// Options configures a Generator.
type Options struct {
	// BaseURL is prepended to every path, e.g. "https://example.com".
	BaseURL string
	// FallbackPrefecture is the prefecture slug used for articles whose
	// company or prefecture cannot be resolved.
	FallbackPrefecture string
	// LastMod stamps pages without a date of their own. Zero means the
	// newest article's publication date.
	LastMod time.Time
	Logger  *slog.Logger
}

// Generator enumerates the pages of one catalog snapshot.
type Generator struct {
	cat      *catalog.Catalog
	resolver *route.Resolver
	opts     Options
	logger   *slog.Logger
}

// New creates a Generator.
func New(c *catalog.Catalog, opts Options) *Generator {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.FallbackPrefecture == "" {
		opts.FallbackPrefecture = DefaultFallbackPrefecture
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cat:      c,
		resolver: route.New(c, opts.FallbackPrefecture),
		opts:     opts,
		logger:   logger,
	}
}

// URL returns the absolute URL of path.
func (g *Generator) URL(path string) string {
	return g.opts.BaseURL + path
}

func (g *Generator) lastMod() string {
	if !g.opts.LastMod.IsZero() {
		return g.opts.LastMod.Format(models.DateLayout)
	}
	newest := ""
	for _, a := range g.cat.Articles() {
		if a.PublishedAt > newest {
			newest = a.PublishedAt
		}
	}
	return newest
}

// Generate enumerates every page in a fixed order: static pages, categories,
// systems, prefectures, prefecture×category, prefecture×system, articles,
// per-prefecture company listings, companies.
//
// Articles whose prefecture cannot be resolved are published under the
// fallback prefecture, logged and listed in Report.Fallbacks. Articles
// without a derivable category and companies without a prefecture have no
// page and are listed in Report.Skipped.
func (g *Generator) Generate() Report {
	lm := g.lastMod()
	rep := Report{Entries: []Entry{}, Fallbacks: []Fallback{}, Skipped: []Skip{}}
	add := func(path, lastmod, freq string, prio float64) {
		rep.Entries = append(rep.Entries, Entry{Loc: g.URL(path), LastMod: lastmod, ChangeFreq: freq, Priority: prio})
	}

	add(route.HomePath, lm, Daily, 1.0)
	add(route.ArticlesPath, lm, Daily, 0.9)
	add(route.CompaniesPath, lm, Weekly, 0.7)

	categories := g.cat.Categories()
	systems := g.cat.Systems()
	prefectures := g.cat.Prefectures()

	for _, c := range categories {
		add(route.CategoryPath(c.Slug), lm, Weekly, 0.8)
	}
	for _, s := range systems {
		add(route.SystemPath(s.Slug), lm, Weekly, 0.7)
	}
	for _, p := range prefectures {
		add(route.PrefecturePath(p.Slug), lm, Weekly, 0.7)
	}
	for _, p := range prefectures {
		for _, c := range categories {
			add(route.PrefectureTopicPath(p.Slug, c.Slug), lm, Weekly, 0.6)
		}
	}
	for _, p := range prefectures {
		for _, s := range systems {
			add(route.PrefectureTopicPath(p.Slug, s.Slug), lm, Weekly, 0.5)
		}
	}

	for _, a := range g.cat.Articles() {
		canon, ok := g.resolver.ArticleCanonical(a)
		if !ok {
			g.logger.Warn("sitemap: article skipped, category unresolved",
				slog.Int("article_id", a.ID),
				slog.String("system_id", a.SystemID))
			rep.Skipped = append(rep.Skipped, Skip{Kind: "article", ID: a.ID, Reason: "category unresolved"})
			continue
		}
		if canon.Fallback {
			g.logger.Warn("sitemap: prefecture fallback",
				slog.Int("article_id", a.ID),
				slog.Int("company_id", a.CompanyID),
				slog.String("fallback", canon.Prefecture))
			rep.Fallbacks = append(rep.Fallbacks, Fallback{ArticleID: a.ID, CompanyID: a.CompanyID, Prefecture: canon.Prefecture})
		}
		add(canon.Path, a.PublishedAt, Monthly, 0.8)
	}

	for _, p := range prefectures {
		add(route.CompanyListPath(p.Slug), lm, Weekly, 0.6)
	}
	for _, co := range g.cat.Companies() {
		p, ok := g.cat.PrefectureOf(co)
		if !ok {
			g.logger.Warn("sitemap: company skipped, prefecture unresolved",
				slog.Int("company_id", co.ID),
				slog.String("prefecture_code", co.PrefectureCode))
			rep.Skipped = append(rep.Skipped, Skip{Kind: "company", ID: co.ID, Reason: "prefecture unresolved"})
			continue
		}
		add(route.CompanyPath(p.Slug, co.ID), lm, Monthly, 0.5)
	}
	return rep
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapNS is the sitemap protocol namespace.
const SitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// WriteSitemap serialises entries as a sitemap urlset.
func WriteSitemap(w io.Writer, entries []Entry) error {
	set := xmlURLSet{Xmlns: SitemapNS, URLs: make([]xmlURL, len(entries))}
	for i, e := range entries {
		set.URLs[i] = xmlURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod,
			ChangeFreq: e.ChangeFreq,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("publish: encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns robots.txt content pointing crawlers at the sitemap.
func Robots(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + base + "/sitemap.xml\n")
	return b.String()
}
