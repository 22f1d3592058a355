package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/devcase/internal/publish"
	"github.com/starford/devcase/internal/search"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Site    SiteConfig        `yaml:"site"`
	Catalog CatalogConfig     `yaml:"catalog"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	return c.SQLite.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SiteConfig describes the public site the catalog is published as.
type SiteConfig struct {
	// BaseURL is the absolute origin used in sitemap and JSON-LD URLs.
	BaseURL string `yaml:"base_url"`
	Name    string `yaml:"name"`
	// FallbackPrefecture is the prefecture slug used in canonical article
	// paths when the company's prefecture cannot be resolved.
	FallbackPrefecture string `yaml:"fallback_prefecture"`
	PerPage            int    `yaml:"per_page"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.FallbackPrefecture, validation.Required),
		validation.Field(&c.PerPage, validation.Min(1), validation.Max(100)),
	)
}

// CatalogConfig holds where catalog data is read from.
//
// An empty DataDir serves the seed data embedded in the binary; Watch is
// ignored in that case.
type CatalogConfig struct {
	DataDir  string        `yaml:"data_dir"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
	// Strict refuses catalogs with dangling references.
	Strict bool `yaml:"strict"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// Embedded reports whether the embedded seed data is used.
func (c *CatalogConfig) Embedded() bool {
	return c.DataDir == ""
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			BaseURL:            "http://localhost:8080",
			Name:               "DevCase",
			FallbackPrefecture: publish.DefaultFallbackPrefecture,
			PerPage:            search.DefaultPerPage,
		},
		Catalog: CatalogConfig{
			Watch:    true,
			Debounce: 500 * time.Millisecond,
		},
		SQLite: SQLiteConfig{
			Path: "./devcase.db",
		},
	}
}
