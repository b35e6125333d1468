package inkpress

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for an inkpress site. Values come from
// site.yaml, with secrets and deployment-specific settings supplied through
// environment variables.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`      // Author name for JSON-LD

	Addr         string `yaml:"addr"`     // Listen address (default ":3000")
	DatabasePath string `yaml:"database"` // SQLite path (default "data/blog.db")
	ContentDir   string `yaml:"content"`  // Markdown content directory (default "content")
	StaticDir    string `yaml:"static"`   // Static asset directory (default "public")
	OutputDir    string `yaml:"output"`   // Static build output directory (default "dist")

	AdminPassword string `yaml:"-"` // Required for serve: admin login password
	SessionSecret string `yaml:"-"` // Required for serve: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`

	Dev bool `yaml:"-"` // Dev mode: live reload, no cache headers

	PostCacheTTL time.Duration `yaml:"-"` // Post cache TTL (default 5min)
}

// LoadSiteConfig reads site.yaml from path and overlays the environment
// variables that carry secrets (ADMIN_PASSWORD, SESSION_SECRET) and
// deployment overrides (SITE_URL, LISTEN_ADDR).
func LoadSiteConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLiveReload watches dir while the server runs and calls rebuild after
// changes settle, then tells connected browsers to refresh. Intended for dev
// mode; rebuild typically re-imports the content directory and invalidates
// the post cache.
func WithLiveReload(dir string, rebuild func(*App) error) Option {
	return func(a *App) {
		a.watchDir = dir
		a.rebuild = rebuild
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpress: required environment variable %s is not set", key)
	}
	return v
}
