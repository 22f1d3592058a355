package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/devcase/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if !cfg.Catalog.Embedded() {
		t.Error("default config should serve the embedded seed")
	}
}

func TestSiteConfig_BaseURLRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.BaseURL = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty base_url should fail")
	}
	if !strings.Contains(err.Error(), "base_url") && !strings.Contains(err.Error(), "BaseURL") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSiteConfig_BaseURLMustBeURL(t *testing.T) {
	cfg := SiteConfig{BaseURL: "not a url", Name: "x", FallbackPrefecture: "tokyo"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid base_url should fail")
	}
}

func TestSiteConfig_PerPageBounds(t *testing.T) {
	cfg := SiteConfig{BaseURL: "https://example.com", Name: "x", FallbackPrefecture: "tokyo", PerPage: 1000}
	if err := cfg.Validate(); err == nil {
		t.Fatal("per_page above 100 should fail")
	}
}

func TestHTTPConfig_InvalidPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port out of range should fail")
	}
}

func TestLoad_ExpandsEnvAndOverridesDefaults(t *testing.T) {
	t.Setenv("DEVCASE_TEST_BASE_URL", "https://cases.example.jp")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `app:
  log_level: debug
  http:
    port: 9090
site:
  base_url: ${DEVCASE_TEST_BASE_URL}
  name: DevCase
  fallback_prefecture: osaka
catalog:
  data_dir: ./data
  debounce: 250ms
  strict: true
sqlite:
  path: ./test.db
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.BaseURL != "https://cases.example.jp" {
		t.Errorf("base_url = %q", cfg.Site.BaseURL)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.Site.FallbackPrefecture != "osaka" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Catalog.Debounce != 250*time.Millisecond || !cfg.Catalog.Strict || cfg.Catalog.Embedded() {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	// Untouched keys keep their defaults.
	if cfg.Site.PerPage != 12 || !cfg.Catalog.Watch {
		t.Errorf("defaults lost: per_page=%d watch=%v", cfg.Site.PerPage, cfg.Catalog.Watch)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("vault:\n  path: ./vault\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := pkgconfig.Load(path, NewDefaultConfig()); err == nil {
		t.Fatal("unknown section should fail")
	}
}
