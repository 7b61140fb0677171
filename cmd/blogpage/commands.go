package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/blogpage"
	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/pagecache"
)

type serveCommand struct {
	Addr          string        `long:"addr" env:"ADDR" default:":3000" description:"Listen address"`
	AdminPassword string        `long:"admin-password" env:"ADMIN_PASSWORD" description:"Enables /admin when set"`
	SessionSecret string        `long:"session-secret" env:"SESSION_SECRET" description:"Admin session signing key"`
	CookieSecure  bool          `long:"cookie-secure" env:"COOKIE_SECURE" description:"Mark cookies Secure (HTTPS only)"`
	PageCacheTTL  time.Duration `long:"page-cache-ttl" env:"PAGE_CACHE_TTL" default:"10m" description:"Rendered page TTL; 0 disables the page cache"`
	RedisAddr     string        `long:"redis-addr" env:"REDIS_ADDR" description:"Cache rendered pages in Redis instead of memory"`
}

func (c *serveCommand) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := opts.logger()

	cfg := opts.siteConfig()
	cfg.Addr = c.Addr
	cfg.AdminPassword = c.AdminPassword
	cfg.SessionSecret = c.SessionSecret
	cfg.CookieSecure = c.CookieSecure
	cfg.PageCacheTTL = cacheTTL(c.PageCacheTTL)

	appOpts := []blogpage.Option{
		blogpage.WithLogger(log),
		blogpage.WithStaticDir(opts.StaticDir),
	}
	if c.PageCacheTTL > 0 {
		pages, err := c.pageCache(ctx)
		if err != nil {
			return err
		}
		appOpts = append(appOpts, blogpage.WithPageCache(pages))
	}

	app := blogpage.New(cfg, blogpage.ViewFuncs{}, appOpts...)
	defer app.Close()
	return app.Start(ctx)
}

func (c *serveCommand) pageCache(ctx context.Context) (pagecache.Cache, error) {
	if c.RedisAddr == "" {
		return pagecache.NewMemoryCache(time.Minute), nil
	}
	pages, err := pagecache.NewRedisCache(ctx, c.RedisAddr, "blogpage:")
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}
	return pages, nil
}

type importCommand struct{}

func (c *importCommand) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := opts.logger()

	store, err := content.NewStore(opts.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := content.Import(ctx, content.NewDirProvider(opts.ContentDir), store)
	if err != nil {
		return err
	}
	stored, err := store.Count(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "posts imported",
		slog.Int("count", n), slog.Int("stored", stored),
		slog.String("from", opts.ContentDir), slog.String("to", opts.DatabasePath))
	return nil
}

type exportCommand struct {
	Out string `long:"out" short:"o" default:"dist" description:"Output directory"`
}

func (c *exportCommand) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := opts.logger()

	app := blogpage.New(opts.siteConfig(), blogpage.ViewFuncs{},
		blogpage.WithLogger(log),
		blogpage.WithStaticDir(opts.StaticDir),
	)
	defer app.Close()
	if err := app.Open(ctx); err != nil {
		return err
	}

	n, err := app.Export(ctx, c.Out)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "site exported", slog.Int("posts", n), slog.String("out", c.Out))
	return nil
}
