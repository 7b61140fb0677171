package seo

import (
	"encoding/json"

	"github.com/eringen/blogpage/content"
)

const schemaContext = "https://schema.org"

// Person is a schema.org Person reference.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BlogPosting is the schema.org BlogPosting document embedded in post pages.
// Image is nil, and encodes as null, when the post has no image.
type BlogPosting struct {
	Context       string  `json:"@context"`
	Type          string  `json:"@type"`
	Headline      string  `json:"headline"`
	DatePublished string  `json:"datePublished"`
	DateModified  string  `json:"dateModified"`
	Description   string  `json:"description"`
	Image         *string `json:"image"`
	URL           string  `json:"url"`
	Author        Person  `json:"author"`
}

// NewBlogPosting builds the structured data for post, credited to authorName.
func NewBlogPosting(post content.Post, authorName, baseURL string) BlogPosting {
	var image *string
	if post.Metadata.Image != "" {
		img := AbsoluteURL(baseURL, post.Metadata.Image)
		image = &img
	}
	return BlogPosting{
		Context:       schemaContext,
		Type:          "BlogPosting",
		Headline:      post.Metadata.Title,
		DatePublished: post.Metadata.PublishedAt,
		DateModified:  post.Metadata.PublishedAt,
		Description:   post.Metadata.Summary,
		Image:         image,
		URL:           PostURL(baseURL, post.Slug),
		Author:        Person{Type: "Person", Name: authorName},
	}
}

// Website is the schema.org WebSite document embedded in the listing page.
type Website struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// NewWebsite builds the structured data for the site root.
func NewWebsite(name, description, baseURL string) Website {
	return Website{
		Context:     schemaContext,
		Type:        "WebSite",
		Name:        name,
		URL:         SiteURL(baseURL) + "/",
		Description: description,
	}
}

// JSONLD encodes v for a <script type="application/ld+json"> element.
// encoding/json escapes <, > and &, so the result cannot close the script.
func JSONLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
