// Package views renders the site's pages as templ components. Every page
// shares one layout that writes the document head from Page.Meta.
package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// DefaultLang is the document language when Site.Lang is empty.
const DefaultLang = "uk"

type body func(ctx context.Context, h *writer)

// layout renders the document around content. The page is buffered so a
// failed render writes nothing.
func layout(page Page, content body) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		h := &writer{w: &buf}
		lang := page.Site.Lang
		if lang == "" {
			lang = DefaultLang
		}
		h.raw("<!doctype html>\n<html")
		h.attr("lang", lang)
		h.raw(">\n<head>\n<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		head(h, page)
		h.raw(`<link rel="stylesheet" href="/public/site.css">` + "\n")
		h.raw(`<link rel="stylesheet" href="/public/chroma.css">` + "\n")
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", page.Site.Name)
		h.raw(` href="/feed.xml">` + "\n</head>\n<body>\n")
		h.raw(`<header class="site-header"><a href="/">`)
		h.text(page.Site.Name)
		h.raw("</a></header>\n<main class=\"container\">\n")
		content(ctx, h)
		h.raw("</main>\n")
		h.raw(`<footer class="site-footer"><a href="/feed.xml">RSS</a> · <a href="/sitemap.xml">Sitemap</a></footer>`)
		h.raw("\n</body>\n</html>\n")
		if h.err != nil {
			return h.err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func head(h *writer, page Page) {
	m := page.Meta
	if m == nil {
		h.raw("<title>")
		h.text(page.Site.Name)
		h.raw("</title>\n")
		h.meta("name", "description", page.Site.Description)
		h.meta("property", "og:site_name", page.Site.Name)
		return
	}
	h.raw("<title>")
	h.text(m.Title)
	h.raw("</title>\n")
	h.meta("name", "description", m.Description)
	h.raw(`<link rel="canonical"`)
	h.url("href", m.Canonical())
	h.raw(">\n")
	h.meta("property", "og:title", m.OpenGraph.Title)
	h.meta("property", "og:description", m.OpenGraph.Description)
	h.meta("property", "og:type", m.OpenGraph.Type)
	h.meta("property", "og:url", m.OpenGraph.URL)
	if m.OpenGraph.PublishedTime != "" {
		h.meta("property", "article:published_time", m.OpenGraph.PublishedTime)
	}
	for _, img := range m.OpenGraph.Images {
		h.meta("property", "og:image", img.URL)
	}
	h.meta("name", "twitter:card", m.Twitter.Card)
	h.meta("name", "twitter:title", m.Twitter.Title)
	h.meta("name", "twitter:description", m.Twitter.Description)
	for _, img := range m.Twitter.Images {
		h.meta("name", "twitter:image", img)
	}
	h.meta("property", "og:site_name", page.Site.Name)
}

// jsonLD writes an encoded JSON-LD document. encoding/json escapes '<',
// so the document cannot close the script element.
func jsonLD(h *writer, doc string) {
	h.raw(`<script type="application/ld+json">`)
	h.raw(doc)
	h.raw("</script>\n")
}

// Home renders the post listing.
func Home(data HomeData) templ.Component {
	return layout(data.Page, func(ctx context.Context, h *writer) {
		jsonLD(h, data.JSONLD)
		h.raw(`<h1 class="title">`)
		h.text(data.Site.Name)
		h.raw("</h1>\n")
		if data.Site.Description != "" {
			h.raw(`<p class="lead">`)
			h.text(data.Site.Description)
			h.raw("</p>\n")
		}
		h.raw(`<ul class="post-list">` + "\n")
		if len(data.Posts) == 0 {
			h.raw(`<li class="post-empty">No posts yet.</li>` + "\n")
		}
		for _, p := range data.Posts {
			h.raw(`<li class="post-item"><a`)
			h.url("href", p.Link)
			h.raw(`><span class="post-item-date">`)
			h.text(p.Date)
			h.raw(`</span><span class="post-item-title">`)
			h.text(p.Title)
			h.raw("</span></a>")
			if p.Author != "" {
				h.raw(`<span class="post-item-author">`)
				h.text(p.Author)
				h.raw("</span>")
			}
			if p.Summary != "" {
				h.raw(`<p class="post-item-summary">`)
				h.text(p.Summary)
				h.raw("</p>")
			}
			h.raw("</li>\n")
		}
		h.raw("</ul>\n")
	})
}

// Post renders a single post with its author column.
func Post(data PostData) templ.Component {
	return layout(data.Page, func(ctx context.Context, h *writer) {
		h.raw("<section>\n")
		jsonLD(h, data.JSONLD)
		h.raw(`<div class="post-layout">` + "\n")
		h.raw(`<div class="post-portrait"><img width="400"`)
		h.url("src", data.Author.Image)
		h.attr("alt", data.Author.Name)
		h.raw("></div>\n")
		h.raw(`<div class="post-main">` + "\n")
		h.raw(`<h1 class="title">`)
		h.text(data.Post.Metadata.Title)
		h.raw("</h1>\n")
		h.raw(`<div class="post-meta"><p class="post-date"><time`)
		h.attr("datetime", data.Post.Metadata.PublishedAt)
		h.raw(">")
		h.text(data.Date)
		h.raw("</time></p></div>\n")
		h.raw(`<div class="post-meta"><p class="post-author">`)
		h.text(data.Author.Name)
		h.raw("</p></div>\n")
		h.raw(`<article class="prose">`)
		h.component(ctx, data.Body)
		h.raw("</article>\n</div>\n</div>\n</section>\n")
	})
}

// AdminLogin renders the admin password form.
func AdminLogin(data LoginData) templ.Component {
	return layout(data.Page, func(ctx context.Context, h *writer) {
		h.raw(`<section class="admin">` + "\n" + `<h1 class="title">Admin</h1>` + "\n")
		if data.ShowError {
			h.raw(`<p class="admin-error">Wrong password.</p>` + "\n")
		}
		h.raw(`<form method="post" action="/admin/login">` + "\n")
		h.csrf(data.CSRF)
		h.raw(`<label>Password <input type="password" name="password" autocomplete="current-password" required></label>` + "\n")
		h.raw(`<button type="submit">Sign in</button>` + "\n</form>\n</section>\n")
	})
}

// AdminDashboard renders the admin post overview.
func AdminDashboard(data AdminData) templ.Component {
	return layout(data.Page, func(ctx context.Context, h *writer) {
		h.raw(`<section class="admin">` + "\n" + `<h1 class="title">Posts</h1>` + "\n")
		if data.Message != "" {
			h.raw(`<p class="admin-message">`)
			h.text(data.Message)
			h.raw("</p>\n")
		}
		h.raw("<p>Source: <code>")
		h.text(data.Source)
		h.raw(fmt.Sprintf("</code> · %d posts", len(data.Posts)))
		if data.Stored > 0 {
			h.raw(fmt.Sprintf(", %d stored", data.Stored))
		}
		h.raw("</p>\n")
		h.raw(`<form method="post" action="/admin/reload">` + "\n")
		h.csrf(data.CSRF)
		h.raw(`<button type="submit">Reload content</button>` + "\n</form>\n")
		h.raw(`<table class="admin-posts">` + "\n")
		h.raw("<thead><tr><th>Slug</th><th>Title</th><th>Published</th><th>Author</th></tr></thead>\n<tbody>\n")
		for _, p := range data.Posts {
			h.raw("<tr")
			if !p.KnownAuthor {
				h.raw(` class="unknown-author"`)
			}
			h.raw("><td><a")
			h.url("href", p.Link)
			h.raw(">")
			h.text(p.Slug)
			h.raw("</a></td><td>")
			h.text(p.Title)
			h.raw(`</td><td class="admin-date">`)
			h.text(p.Date)
			h.raw(`</td><td><img width="32"`)
			h.url("src", p.Author.Image)
			h.raw(` alt=""> `)
			h.text(p.Author.Name)
			if !p.KnownAuthor {
				h.raw(" (unmapped)")
			}
			h.raw("</td></tr>\n")
		}
		h.raw("</tbody>\n</table>\n")
		h.raw(`<form method="post" action="/admin/logout">` + "\n")
		h.csrf(data.CSRF)
		h.raw(`<button type="submit">Sign out</button>` + "\n</form>\n</section>\n")
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return errorPage(site, "404 - Page Not Found", "The page you are looking for does not exist.")
}

// ServerError renders the 5xx page.
func ServerError(site Site) templ.Component {
	return errorPage(site, "Something went wrong", "Please try again in a moment.")
}

func errorPage(site Site, title, message string) templ.Component {
	return layout(Page{Site: site}, func(ctx context.Context, h *writer) {
		h.raw(`<section class="error-page">` + "\n" + `<h1 class="title">`)
		h.text(title)
		h.raw("</h1>\n<p>")
		h.text(message)
		h.raw("</p>\n" + `<p><a href="/">Back to all posts</a></p>` + "\n</section>\n")
	})
}
