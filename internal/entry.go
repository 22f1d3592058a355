// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/devcase/internal/api"
	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/catalog/seed"
	"github.com/starford/devcase/internal/index"
	"github.com/starford/devcase/internal/mcpserver"
	"github.com/starford/devcase/internal/siteservice"
	"github.com/starford/devcase/internal/sse"
	"github.com/starford/devcase/internal/storage"
)

var errConfigRequired = errors.New("config is required")

// runtime is what every command needs: a logger, the index and the service
// over the live catalog.
type runtime struct {
	logger *slog.Logger
	db     *index.DB
	svc    *siteservice.Service
}

func (rt *runtime) Close() error {
	if rt.db == nil {
		return nil
	}
	return rt.db.Close()
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// source returns the provider catalog files are read from.
func source(cfg *Config) (storage.Provider, error) {
	if cfg.Catalog.Embedded() {
		return storage.NewEmbedded(seed.Files), nil
	}
	return storage.NewFS(cfg.Catalog.DataDir)
}

func start(cfg *Config, logger *slog.Logger) (*runtime, error) {
	src, err := source(cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	svc, err := siteservice.New(src, db, siteservice.Options{
		BaseURL:            cfg.Site.BaseURL,
		SiteName:           cfg.Site.Name,
		FallbackPrefecture: cfg.Site.FallbackPrefecture,
		PerPage:            cfg.Site.PerPage,
		Strict:             cfg.Catalog.Strict,
		Logger:             logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &runtime{logger: logger, db: db, svc: svc}, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Catalog.DataDir),
		slog.Bool("embedded", cfg.Catalog.Embedded()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	rt, err := start(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: newRouter(cfg, rt.svc, broker),
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the catalog when data files change.
	if cfg.Catalog.Watch && !cfg.Catalog.Embedded() {
		g.Go(func() error {
			err := catalog.Watch(gCtx, cfg.Catalog.DataDir, cfg.Catalog.Debounce, logger, func() {
				reload(gCtx, rt.svc, broker, logger)
			})
			if err != nil {
				logger.Error("watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// reload swaps in a fresh catalog and tells SSE subscribers about it.
func reload(ctx context.Context, svc *siteservice.Service, broker *sse.Broker, logger *slog.Logger) {
	changed, err := svc.Reload(ctx)
	if err != nil {
		logger.Error("catalog reload failed", slog.String("error", err.Error()))
		broker.PublishReloadError(err)
		return
	}
	if changed {
		logger.Info("catalog reloaded", slog.String("version", svc.Version()))
		broker.PublishCatalogEvent(svc.Version(), svc.ArticleCount())
	}
}

func newRouter(cfg *Config, svc *siteservice.Service, broker *sse.Broker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if svc.ArticleCount() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"empty catalog"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	h := api.NewHandler(svc)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)

	if !cfg.Catalog.Embedded() {
		assets := api.NewAssetHandler(filepath.Join(cfg.Catalog.DataDir, api.AssetsDir))
		r.Get("/assets/{filename}", assets.ServeFile)
	}

	var events http.Handler
	if broker != nil {
		events = broker
	}
	r.Mount(api.Prefix, api.NewRouter(svc, events))
	return r
}

// Export writes sitemap.xml and robots.txt for the current catalog into
// outDir.
func Export(ctx context.Context, outDir string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	rt, err := start(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(outDir)
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}

	body, rep, err := rt.svc.Sitemap(ctx)
	if err != nil {
		return fmt.Errorf("generate sitemap: %w", err)
	}
	if err := out.Write("sitemap.xml", body); err != nil {
		return err
	}
	if err := out.Write("robots.txt", []byte(rt.svc.Robots())); err != nil {
		return err
	}

	logger.Info("export complete",
		slog.String("dir", out.Root()),
		slog.Int("entries", len(rep.Entries)),
		slog.Int("fallbacks", len(rep.Fallbacks)),
		slog.Int("skipped", len(rep.Skipped)))
	return nil
}

// ServeMCP serves the catalog over MCP on stdin/stdout. Logs go to stderr.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	rt, err := start(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(rt.svc, app.version).ServeStdio()
}
