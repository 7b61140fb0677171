// Package blogpage serves a markdown blog built with Go, Echo, and templ.
// It renders post pages with author portraits, SEO metadata and BlogPosting
// JSON-LD, plus a listing, feeds, a sitemap and an optional admin view.
//
// Pages come from ViewFuncs; any field left nil uses the bundled views,
// so callers can replace individual pages without owning all of them.
package blogpage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/pagecache"
	"github.com/eringen/blogpage/views"
)

// ViewFuncs holds the components the App renders pages with.
type ViewFuncs struct {
	Home           func(views.HomeData) templ.Component
	Post           func(views.PostData) templ.Component
	AdminLogin     func(views.LoginData) templ.Component
	AdminDashboard func(views.AdminData) templ.Component
	NotFound       func(views.Site) templ.Component
	ServerError    func(views.Site) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Home == nil {
		v.Home = views.Home
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.AdminLogin == nil {
		v.AdminLogin = views.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = views.AdminDashboard
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central blogpage application. It wires together the post
// source, caches, handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *content.Store // set when Source is SourceSQLite
	Cache  *content.PostCache
	Pages  pagecache.Cache // nil disables page caching
	Views  ViewFuncs
	Logger *slog.Logger

	provider     content.Provider
	loginLimiter *LoginLimiter
	portraits    *portraitCache
	customRoutes []func(*App)
	staticDir    string
	opened       bool
}

// New creates a blogpage App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     v,
		staticDir: "public",
		portraits: newPortraitCache(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	return a
}

// Open loads the post source, fills the post cache and registers middleware
// and routes. It fails when the initial load fails so a broken content
// directory is reported at startup.
func (a *App) Open(ctx context.Context) error {
	if a.opened {
		return nil
	}
	if a.Config.AdminEnabled() && a.Config.SessionSecret == "" {
		return errors.New("blogpage: SessionSecret is required when AdminPassword is set")
	}

	if a.provider == nil {
		switch a.Config.Source {
		case SourceDir:
			a.provider = content.NewDirProvider(a.Config.ContentDir)
		case SourceSQLite:
			store, err := content.NewStore(a.Config.DatabasePath)
			if err != nil {
				return fmt.Errorf("blogpage: init store: %w", err)
			}
			a.Store = store
			a.provider = store
		default:
			return fmt.Errorf("blogpage: unknown content source %q", a.Config.Source)
		}
	}

	a.Cache = content.NewPostCache(a.provider, a.Config.PostCacheTTL)
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("blogpage: load posts: %w", err)
	}
	a.Logger.InfoContext(ctx, "posts loaded",
		slog.Int("count", len(posts)), slog.String("source", a.sourceName()))

	if a.Config.AdminEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.opened = true
	return nil
}

// Start opens the App and serves HTTP until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Open(ctx); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.InfoContext(ctx, "listening", slog.String("addr", a.Config.Addr), slog.String("url", a.Config.URL))
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Logger.InfoContext(shutdownCtx, "shutting down")
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", a.handleSiteCSS)
	e.GET("/public/chroma.css", handleChromaCSS)
	e.Static("/public", a.staticDir)
	e.GET("/assets/:file", a.handleAsset)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/atom.xml", a.handleAtom)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/blog/:slug/meta.json", a.handleMeta)

	if a.Config.AdminEnabled() {
		g := e.Group("/admin", a.adminMiddleware()...)
		g.GET("", a.handleAdmin)
		g.POST("/login", a.handleAdminLogin)
		g.POST("/logout", handleAdminLogout)
		g.POST("/reload", a.handleAdminReload)
	}
}

// Reload drops the cached posts, which moves page cache keys to the new
// content digest. With a SQLite source the content directory is imported
// into the store first. It returns the number of posts now served.
func (a *App) Reload(ctx context.Context) (int, error) {
	if a.Store != nil {
		if _, err := os.Stat(a.Config.ContentDir); err == nil {
			n, err := content.Import(ctx, content.NewDirProvider(a.Config.ContentDir), a.Store)
			if err != nil {
				return 0, fmt.Errorf("blogpage: reload: %w", err)
			}
			a.Logger.InfoContext(ctx, "posts imported", slog.Int("count", n))
		}
	}
	a.Cache.Invalidate()
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return 0, fmt.Errorf("blogpage: reload: %w", err)
	}
	return len(uniquePosts(posts)), nil
}

func (a *App) sourceName() string {
	if a.Store != nil {
		return SourceSQLite
	}
	if _, ok := a.provider.(*content.DirProvider); ok {
		return SourceDir
	}
	return "custom"
}

// Close releases the store and page cache.
func (a *App) Close() error {
	var errs []error
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Pages != nil {
		errs = append(errs, a.Pages.Close())
	}
	return errors.Join(errs...)
}
