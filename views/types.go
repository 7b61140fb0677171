package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/blogpage/authors"
	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/seo"
)

// Site holds site-wide settings every page reads.
type Site struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, no trailing slash
	Description string // SITE_DESCRIPTION
	Lang        string // SITE_LANG, DefaultLang when empty
}

// Page is embedded in every page model. Meta drives the <head> tags.
type Page struct {
	Site Site
	Meta *seo.Metadata
}

// PostData is the model of a post page.
type PostData struct {
	Page
	Post   content.Post
	Author authors.Details
	JSONLD string
	Body   templ.Component
	Date   string
}

// PostSummary is one entry of the listing page.
type PostSummary struct {
	Title   string
	Link    string
	Date    string
	Summary string
	Author  string
}

// HomeData is the model of the listing page.
type HomeData struct {
	Page
	JSONLD string
	Posts  []PostSummary
}

// AdminPost is one row of the admin dashboard.
type AdminPost struct {
	Slug        string
	Link        string
	Title       string
	Date        string
	Author      authors.Details
	KnownAuthor bool
}

// AdminData is the model of the admin dashboard.
type AdminData struct {
	Page
	Posts   []AdminPost
	Stored  int // rows in the SQLite store, 0 for other sources
	Source  string
	Message string
	CSRF    string
}

// LoginData is the model of the admin login form.
type LoginData struct {
	Page
	ShowError bool
	CSRF      string
}
