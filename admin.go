package blogpage

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	slogctx "github.com/veqryn/slog-context"

	"github.com/eringen/blogpage/authors"
	"github.com/eringen/blogpage/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(views.LoginData{Page: views.Page{Site: a.Site()}, CSRF: CsrfToken(c)}))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	a.loginLimiter.Record(ip)
	ctx := c.Request().Context()
	slogctx.FromCtx(ctx).WarnContext(ctx, "admin login failed", slog.String("ip", ip))
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(views.LoginData{
		Page:      views.Page{Site: a.Site()},
		ShowError: true,
		CSRF:      CsrfToken(c),
	}))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	n, err := a.Reload(c.Request().Context())
	if err != nil {
		return err
	}
	msg := url.Values{"msg": {fmt.Sprintf("Reloaded %d posts.", n)}}
	return c.Redirect(http.StatusSeeOther, "/admin?"+msg.Encode())
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	var stored int
	if a.Store != nil {
		if stored, err = a.Store.Count(ctx); err != nil {
			return err
		}
	}
	now := time.Now()
	rows := make([]views.AdminPost, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, views.AdminPost{
			Slug:        p.Slug,
			Link:        p.Link(),
			Title:       p.Metadata.Title,
			Date:        views.FormatDateRelative(p.Metadata.PublishedAt, now),
			Author:      authors.Resolve(p.Metadata.Author),
			KnownAuthor: authors.Known(p.Metadata.Author),
		})
	}
	return Render(c, a.Views.AdminDashboard(views.AdminData{
		Page:    views.Page{Site: a.Site()},
		Posts:   rows,
		Stored:  stored,
		Source:  a.sourceName(),
		Message: msg,
		CSRF:    CsrfToken(c),
	}))
}
