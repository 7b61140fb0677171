package blogpage

import (
	"log/slog"
	"time"

	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/pagecache"
	"github.com/eringen/blogpage/views"
)

// Content sources accepted in SiteConfig.Source.
const (
	SourceDir    = "dir"
	SourceSQLite = "sqlite"
)

// SiteConfig holds all configuration for a blogpage site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Base URL for canonical and social links (default "http://localhost:3000")
	Description string // Site description for feeds and meta tags
	Lang        string // Document language (default "uk")

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Directory of .md/.mdx posts (default "content/posts")
	Source       string // SourceDir (default) or SourceSQLite
	DatabasePath string // SQLite path for SourceSQLite (default "data/blog.db")

	AdminPassword string // Enables /admin when set
	SessionSecret string // Required with AdminPassword
	CookieSecure  bool   // Set true for HTTPS

	// Cache lifetimes. Zero selects the default and a negative value
	// disables the cache.
	PostCacheTTL time.Duration // Post collection cache TTL (default 5min)
	PageCacheTTL time.Duration // Rendered page TTL when a page cache is set (default 10min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.Lang == "" {
		c.Lang = views.DefaultLang
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.Source == "" {
		c.Source = SourceDir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 10 * time.Minute
	}
}

// PageCacheEnabled reports whether rendered pages may be cached.
func (c SiteConfig) PageCacheEnabled() bool {
	return c.PageCacheTTL > 0
}

// AdminEnabled reports whether the admin routes are mounted.
func (c SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
// Author portraits are read from its assets subdirectory.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithProvider serves posts from p instead of the configured Source.
func WithProvider(p content.Provider) Option {
	return func(a *App) {
		a.provider = p
	}
}

// WithPageCache caches rendered post pages in c. The App closes c.
func WithPageCache(c pagecache.Cache) Option {
	return func(a *App) {
		a.Pages = c
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
