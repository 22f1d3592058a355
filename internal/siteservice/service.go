// Package siteservice coordinates the catalog snapshot, the full-text index
// and the page-level views the HTTP API and the MCP server expose.
package siteservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/index"
	"github.com/starford/devcase/internal/lookup"
	"github.com/starford/devcase/internal/publish"
	"github.com/starford/devcase/internal/route"
	"github.com/starford/devcase/internal/search"
	"github.com/starford/devcase/internal/storage"
)

// Options configures a Service.
type Options struct {
	BaseURL            string
	SiteName           string
	FallbackPrefecture string
	PerPage            int
	// Strict rejects catalogs with dangling references on load and reload.
	Strict bool
	Logger *slog.Logger
}

// Service is the façade over one live catalog.
type Service struct {
	source storage.Provider
	store  *catalog.Store
	db     index.ArticleIndex
	opts   Options
	logger *slog.Logger

	reloadMu sync.Mutex
}

// New loads the catalog from source and indexes it. db may be nil, in which
// case full-text search falls back to title matching.
func New(source storage.Provider, db index.ArticleIndex, opts Options) (*Service, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PerPage <= 0 {
		opts.PerPage = search.DefaultPerPage
	}
	if opts.FallbackPrefecture == "" {
		opts.FallbackPrefecture = publish.DefaultFallbackPrefecture
	}
	s := &Service{source: source, db: db, opts: opts, logger: opts.Logger}

	cat, err := s.load()
	if err != nil {
		return nil, err
	}
	s.store = catalog.NewStore(cat)
	return s, nil
}

// NewFromCatalog wraps an already built catalog. Reload is unavailable.
func NewFromCatalog(cat *catalog.Catalog, db index.ArticleIndex, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PerPage <= 0 {
		opts.PerPage = search.DefaultPerPage
	}
	if opts.FallbackPrefecture == "" {
		opts.FallbackPrefecture = publish.DefaultFallbackPrefecture
	}
	s := &Service{db: db, opts: opts, logger: opts.Logger, store: catalog.NewStore(cat)}
	if db != nil {
		if err := index.Sync(db, cat, s.logger); err != nil {
			s.logger.Warn("initial index sync failed", slog.String("error", err.Error()))
		}
	}
	return s
}

func (s *Service) load() (*catalog.Catalog, error) {
	cat, err := catalog.Load(s.source, catalog.Options{Strict: s.opts.Strict})
	if err != nil {
		return nil, err
	}
	for _, iss := range cat.Issues() {
		s.logger.Warn("catalog: dangling reference",
			slog.String("table", iss.Table),
			slog.String("id", iss.ID),
			slog.String("field", iss.Field),
			slog.String("ref", iss.Ref))
	}
	if s.db != nil {
		if err := index.Sync(s.db, cat, s.logger); err != nil {
			s.logger.Warn("index sync failed", slog.String("error", err.Error()))
		}
	}
	s.logger.Info("catalog loaded",
		slog.String("version", cat.Version()),
		slog.Int("articles", len(cat.Articles())),
		slog.Int("companies", len(cat.Companies())))
	return cat, nil
}

// Reload re-reads the data source and swaps the live catalog. On error the
// previous catalog stays in place. It reports whether the content changed.
func (s *Service) Reload(_ context.Context) (changed bool, err error) {
	if s.source == nil {
		return false, fmt.Errorf("siteservice: no data source to reload from")
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cat, err := s.load()
	if err != nil {
		return false, err
	}
	prev := s.store.Swap(cat)
	return prev.Version() != cat.Version(), nil
}

// Catalog returns the live catalog snapshot.
func (s *Service) Catalog() *catalog.Catalog { return s.store.Current() }

// Version returns the live catalog version.
func (s *Service) Version() string { return s.store.Current().Version() }

// ArticleCount returns the number of articles in the live catalog.
func (s *Service) ArticleCount() int { return len(s.store.Current().Articles()) }

// Options returns the effective options.
func (s *Service) Options() Options { return s.opts }

// view bundles the components built over one catalog snapshot, so a single
// request never mixes two catalog versions.
type view struct {
	cat *catalog.Catalog
	lk  *lookup.Lookup
	eng *search.Engine
	res *route.Resolver
	gen *publish.Generator
}

func (s *Service) view() view {
	cat := s.store.Current()
	return view{
		cat: cat,
		lk:  lookup.New(cat),
		eng: search.New(cat),
		res: route.New(cat, s.opts.FallbackPrefecture),
		gen: publish.New(cat, publish.Options{
			BaseURL:            s.opts.BaseURL,
			FallbackPrefecture: s.opts.FallbackPrefecture,
			Logger:             s.logger,
		}),
	}
}
