package internal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/devcase/internal/index"
	"github.com/starford/devcase/internal/sse"
	"github.com/starford/devcase/internal/testutil"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func embeddedConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = index.MemoryDSN
	cfg.Site.BaseURL = "https://cases.example.jp"
	return cfg
}

func dataDirConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	data, err := yaml.Marshal(testutil.Dataset())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "catalog.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := embeddedConfig()
	cfg.Catalog.DataDir = dir
	return cfg
}

func TestNewApplication_ConfigRequired(t *testing.T) {
	if _, err := newApplication(nil); !errors.Is(err, errConfigRequired) {
		t.Fatalf("err = %v", err)
	}
	app, err := newApplication([]Option{WithConfig(embeddedConfig()), WithVersion("1.2.3")})
	if err != nil || app.version != "1.2.3" {
		t.Fatalf("app = %+v, err = %v", app, err)
	}
}

func TestRouter_EmbeddedSeed(t *testing.T) {
	cfg := embeddedConfig()
	rt, err := start(cfg, quiet())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	broker := sse.NewBroker(time.Second)
	t.Cleanup(broker.Close)
	srv := httptest.NewServer(newRouter(cfg, rt.svc, broker))
	t.Cleanup(srv.Close)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/health/live", http.StatusOK, `"ok"`},
		{"/health/ready", http.StatusOK, `"ok"`},
		{"/robots.txt", http.StatusOK, "Sitemap: https://cases.example.jp/sitemap.xml"},
		{"/sitemap.xml", http.StatusOK, "<urlset"},
		{"/api/categories", http.StatusOK, "categories"},
		{"/api/articles/abc", http.StatusNotFound, "error"},
		// No data dir, no assets.
		{"/assets/logo.png", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		var body bytes.Buffer
		_, _ = body.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s: status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		if !strings.Contains(body.String(), tt.want) {
			t.Errorf("GET %s: body = %q, want substring %q", tt.path, body.String(), tt.want)
		}
	}
}

func TestRouter_ServesAssetsFromDataDir(t *testing.T) {
	cfg := dataDirConfig(t)
	assets := filepath.Join(cfg.Catalog.DataDir, "assets")
	if err := os.MkdirAll(assets, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "logo.txt"), []byte("acme"), 0o644); err != nil {
		t.Fatal(err)
	}

	rt, err := start(cfg, quiet())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	rec := httptest.NewRecorder()
	newRouter(cfg, rt.svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/logo.txt", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "acme" {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func waitEvent(t *testing.T, ch chan []byte, kind string) string {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if strings.Contains(string(msg), "event: "+kind+"\n") {
				return string(msg)
			}
		case <-timeout:
			t.Fatalf("no %s event", kind)
			return ""
		}
	}
}

func TestReload_PublishesEvents(t *testing.T) {
	cfg := dataDirConfig(t)
	cfg.Catalog.Strict = true
	rt, err := start(cfg, quiet())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	broker := sse.NewBroker(time.Second)
	t.Cleanup(broker.Close)
	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	more := []byte("articles:\n  - {id: 7, company_id: 12, system_id: \"30\", title: Second ERP, published_at: \"2024-05-01\", article_type: process}\n")
	if err := os.WriteFile(filepath.Join(cfg.Catalog.DataDir, "more.yaml"), more, 0o644); err != nil {
		t.Fatal(err)
	}
	reload(context.Background(), rt.svc, broker, quiet())
	msg := waitEvent(t, ch, sse.TypeCatalogReloaded)
	if !strings.Contains(msg, `"articles":7`) {
		t.Errorf("event = %q", msg)
	}

	broken := []byte("articles:\n  - {id: 8, company_id: 999, system_id: \"30\", title: Broken, published_at: \"2024-05-01\", article_type: process}\n")
	if err := os.WriteFile(filepath.Join(cfg.Catalog.DataDir, "broken.yaml"), broken, 0o644); err != nil {
		t.Fatal(err)
	}
	reload(context.Background(), rt.svc, broker, quiet())
	waitEvent(t, ch, sse.TypeReloadFailed)
	if rt.svc.ArticleCount() != 7 {
		t.Errorf("articles = %d after failed reload", rt.svc.ArticleCount())
	}
}

func TestExport_WritesSitemapAndRobots(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	if err := Export(context.Background(), out, WithConfig(embeddedConfig())); err != nil {
		t.Fatalf("Export: %v", err)
	}

	sitemap, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sitemap), "<loc>https://cases.example.jp/</loc>") {
		t.Errorf("sitemap = %s", sitemap)
	}
	robots, err := os.ReadFile(filepath.Join(out, "robots.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(robots), "User-agent: *\n") {
		t.Errorf("robots = %q", robots)
	}
}

func TestExport_ConfigRequired(t *testing.T) {
	if err := Export(context.Background(), t.TempDir()); !errors.Is(err, errConfigRequired) {
		t.Fatalf("err = %v", err)
	}
}
