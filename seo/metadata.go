// Package seo derives page metadata, social-sharing tags and schema.org
// structured data for blog pages.
package seo

import (
	"net/url"
	"strings"

	"github.com/eringen/blogpage/content"
)

// Image is one Open Graph image entry.
type Image struct {
	URL string `json:"url"`
}

// OpenGraph holds the og:* fields of a page.
type OpenGraph struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	PublishedTime string  `json:"publishedTime,omitempty"`
	URL           string  `json:"url"`
	Images        []Image `json:"images"`
}

// Twitter holds the twitter:* card fields of a page.
type Twitter struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Metadata is everything the document head needs for one page.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OpenGraph   OpenGraph `json:"openGraph"`
	Twitter     Twitter   `json:"twitter"`
}

// Canonical returns the canonical URL of the page.
func (m *Metadata) Canonical() string {
	return m.OpenGraph.URL
}

// ForPost derives the metadata of a post page. It returns nil when post is
// nil; callers fall back to ForSite.
func ForPost(post *content.Post, baseURL string) *Metadata {
	if post == nil {
		return nil
	}
	meta := post.Metadata
	images := []Image{}
	twitterImages := []string{}
	if meta.Image != "" {
		img := AbsoluteURL(baseURL, meta.Image)
		images = append(images, Image{URL: img})
		twitterImages = append(twitterImages, img)
	}
	return &Metadata{
		Title:       meta.Title,
		Description: meta.Summary,
		OpenGraph: OpenGraph{
			Title:         meta.Title,
			Description:   meta.Summary,
			Type:          "article",
			PublishedTime: meta.PublishedAt,
			URL:           PostURL(baseURL, post.Slug),
			Images:        images,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       meta.Title,
			Description: meta.Summary,
			Images:      twitterImages,
		},
	}
}

// ForSite is the default metadata used by the listing page and by any page
// without post metadata.
func ForSite(name, description, baseURL string) *Metadata {
	return &Metadata{
		Title:       name,
		Description: description,
		OpenGraph: OpenGraph{
			Title:       name,
			Description: description,
			Type:        "website",
			URL:         SiteURL(baseURL),
			Images:      []Image{},
		},
		Twitter: Twitter{
			Card:        "summary",
			Title:       name,
			Description: description,
			Images:      []string{},
		},
	}
}

// SiteURL normalizes a configured base URL: no trailing slash.
func SiteURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// PostURL is the absolute URL of a post page.
func PostURL(baseURL, slug string) string {
	return SiteURL(baseURL) + "/blog/" + url.PathEscape(slug)
}

// AbsoluteURL resolves a site path against baseURL. Values that already carry
// a scheme are returned unchanged.
func AbsoluteURL(baseURL, p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return SiteURL(baseURL) + p
}
