package blogpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	slogctx "github.com/veqryn/slog-context"

	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/markdown"
	"github.com/eringen/blogpage/pagecache"
	"github.com/eringen/blogpage/seo"
)

func (a *App) handleHome(c echo.Context) error {
	data, err := a.HomePage(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(data))
}

// slugParam returns the decoded :slug. Echo decodes path parameters itself
// unless the request path carries escapes it cannot round-trip, in which
// case the parameter is still escaped.
func slugParam(c echo.Context) (string, error) {
	slug := c.Param("slug")
	if c.Request().URL.RawPath == "" {
		return slug, nil
	}
	return url.PathUnescape(slug)
}

func (a *App) handlePost(c echo.Context) error {
	slug, err := slugParam(c)
	if err != nil {
		return echo.ErrNotFound
	}
	ctx := slogctx.With(c.Request().Context(), slog.String("slug", slug))
	log := slogctx.FromCtx(ctx)

	cache := a.Pages != nil && a.Config.PageCacheEnabled()
	var key string
	if cache {
		key, err = a.pageKey(ctx, slug)
		if err != nil {
			return err
		}
		body, err := a.Pages.Get(ctx, key)
		if err == nil {
			return c.HTMLBlob(http.StatusOK, body)
		}
		if !errors.Is(err, pagecache.ErrCacheMiss) {
			log.WarnContext(ctx, "page cache read failed", slog.Any("error", err))
		}
	}

	var buf bytes.Buffer
	if err := a.RenderPost(ctx, &buf, slug); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	if cache {
		if err := a.Pages.Set(ctx, key, buf.Bytes(), a.Config.PageCacheTTL); err != nil {
			log.WarnContext(ctx, "page cache write failed", slog.Any("error", err))
		}
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// pageKey names a rendered page by the digest of the collection it was
// rendered from. Processes serving the same posts share keys.
func (a *App) pageKey(ctx context.Context, slug string) (string, error) {
	version, err := a.Cache.Version(ctx)
	if err != nil {
		return "", err
	}
	return "post:" + version + ":" + slug, nil
}

func (a *App) handleMeta(c echo.Context) error {
	slug, err := slugParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "post not found"})
	}
	meta, err := a.Metadata(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	if meta == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "post not found"})
	}
	return c.JSON(http.StatusOK, meta)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeSitemap(c.Response(), posts)
}

func (a *App) handleFeed(c echo.Context) error {
	feed, err := a.buildFeed(c.Request().Context())
	if err != nil {
		return err
	}
	rss, err := feed.ToRss()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (a *App) handleAtom(c echo.Context) error {
	feed, err := a.buildFeed(c.Request().Context())
	if err != nil {
		return err
	}
	atom, err := feed.ToAtom()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: %s/sitemap.xml\n", seo.SiteURL(a.Config.URL))
	return c.String(http.StatusOK, body)
}

func (a *App) handleSiteCSS(c echo.Context) error {
	css, err := EmbeddedAssets.ReadFile("embedded/site.css")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", css)
}

func handleChromaCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(markdown.ChromaCSS()))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	ctx := c.Request().Context()
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		slogctx.FromCtx(ctx).ErrorContext(ctx, "server error",
			slog.String("path", c.Request().URL.Path), slog.Any("error", err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.Site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
