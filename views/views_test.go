package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/blogpage/authors"
	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/markdown"
	"github.com/eringen/blogpage/seo"
)

var testSite = Site{Name: "Поезія", URL: "https://poetry.example.com", Description: "Вірші"}

func renderDoc(t *testing.T, render func(context.Context, *bytes.Buffer) error) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func postData() PostData {
	post := content.Post{
		Slug: "hello-world",
		Metadata: content.Metadata{
			Title:       "Hello World",
			PublishedAt: "2024-04-09",
			Summary:     "Перший допис.",
			Author:      "Леся",
		},
	}
	author := authors.Resolve(post.Metadata.Author)
	return PostData{
		Page:   Page{Site: testSite, Meta: seo.ForPost(&post, testSite.URL)},
		Post:   post,
		Author: author,
		JSONLD: seo.JSONLD(seo.NewBlogPosting(post, author.Name, testSite.URL)),
		Body:   markdown.Markdown("Contra spem spero", markdown.Options{}),
		Date:   FormatDate(post.Metadata.PublishedAt),
	}
}

func TestPostPage(t *testing.T) {
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return Post(postData()).Render(ctx, buf)
	})

	assert.Equal(t, "Hello World", doc.Find("title").Text())
	assert.Equal(t, "Hello World", doc.Find("h1.title").Text())
	assert.Equal(t, "Леся Українка", doc.Find(".post-author").Text())
	assert.Equal(t, "April 9, 2024", doc.Find(".post-date time").Text())

	src, _ := doc.Find(".post-portrait img").Attr("src")
	assert.Equal(t, "/assets/Lesya.png", src)
	width, _ := doc.Find(".post-portrait img").Attr("width")
	assert.Equal(t, "400", width)

	assert.Equal(t, "Contra spem spero", doc.Find("article.prose p").Text())

	ogType, _ := doc.Find(`meta[property="og:type"]`).Attr("content")
	assert.Equal(t, "article", ogType)
	ogURL, _ := doc.Find(`meta[property="og:url"]`).Attr("content")
	assert.Equal(t, "https://poetry.example.com/blog/hello-world", ogURL)
	assert.Equal(t, 0, doc.Find(`meta[property="og:image"]`).Length())
	card, _ := doc.Find(`meta[name="twitter:card"]`).Attr("content")
	assert.Equal(t, "summary_large_image", card)
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://poetry.example.com/blog/hello-world", canonical)
}

func TestPostPageWithoutBody(t *testing.T) {
	data := postData()
	data.Body = nil
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return Post(data).Render(ctx, buf)
	})
	assert.Equal(t, 1, doc.Find("article.prose").Length())
	assert.Empty(t, strings.TrimSpace(doc.Find("article.prose").Text()))
}

func TestLayoutLanguage(t *testing.T) {
	tests := []struct {
		lang, want string
	}{
		{"", "uk"},
		{"en", "en"},
		{"pt-BR", "pt-BR"},
	}
	for _, tt := range tests {
		site := testSite
		site.Lang = tt.lang
		doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
			return NotFound(site).Render(ctx, buf)
		})
		lang, _ := doc.Find("html").Attr("lang")
		assert.Equal(t, tt.want, lang, tt.lang)
	}
}

func TestLayoutEscapesText(t *testing.T) {
	site := testSite
	site.Name = `<b>"Поезія"</b>`
	var buf bytes.Buffer
	require.NoError(t, NotFound(site).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;")
}

func TestPostPageJSONLD(t *testing.T) {
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return Post(postData()).Render(ctx, buf)
	})

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 1, scripts.Length())

	var ld struct {
		Type   string  `json:"@type"`
		Image  *string `json:"image"`
		Author struct {
			Type string `json:"@type"`
			Name string `json:"name"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal([]byte(scripts.Text()), &ld))
	assert.Equal(t, "BlogPosting", ld.Type)
	assert.Nil(t, ld.Image)
	assert.Equal(t, "Person", ld.Author.Type)
	assert.Equal(t, "Леся Українка", ld.Author.Name)
}

func TestHomePage(t *testing.T) {
	data := HomeData{
		Page:   Page{Site: testSite, Meta: seo.ForSite(testSite.Name, testSite.Description, testSite.URL)},
		JSONLD: seo.JSONLD(seo.NewWebsite(testSite.Name, testSite.Description, testSite.URL)),
		Posts: []PostSummary{
			{Title: "Hello World", Link: "/blog/hello-world", Date: "April 9, 2024", Author: "Леся Українка"},
		},
	}
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return Home(data).Render(ctx, buf)
	})

	assert.Equal(t, 1, doc.Find(".post-item").Length())
	href, _ := doc.Find(".post-item a").Attr("href")
	assert.Equal(t, "/blog/hello-world", href)
	assert.Equal(t, "Hello World", doc.Find(".post-item-title").Text())
	ogType, _ := doc.Find(`meta[property="og:type"]`).Attr("content")
	assert.Equal(t, "website", ogType)
}

func TestHomePageEmpty(t *testing.T) {
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return Home(HomeData{Page: Page{Site: testSite}, JSONLD: "{}"}).Render(ctx, buf)
	})
	assert.Equal(t, "No posts yet.", doc.Find(".post-empty").Text())
	assert.Equal(t, "Поезія", doc.Find("title").Text())
}

func TestErrorPages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NotFound(testSite).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "404")
	assert.Contains(t, buf.String(), "<title>Поезія</title>")

	buf.Reset()
	require.NoError(t, ServerError(testSite).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Something went wrong")
}

func TestAdminDashboardFlagsUnknownAuthors(t *testing.T) {
	data := AdminData{
		Page: Page{Site: testSite},
		Posts: []AdminPost{
			{Slug: "a", Link: "/blog/a", Title: "A", Date: "April 9, 2024 (2mo ago)", Author: authors.Resolve("Леся"), KnownAuthor: true},
			{Slug: "100%-b", Link: "/blog/100%25-b", Title: "B", Author: authors.Resolve("Франко")},
		},
		Stored: 2,
		Source: "sqlite",
		CSRF:   "token123",
	}
	doc := renderDoc(t, func(ctx context.Context, buf *bytes.Buffer) error {
		return AdminDashboard(data).Render(ctx, buf)
	})

	assert.Equal(t, 1, doc.Find("tr.unknown-author").Length())
	assert.True(t, strings.Contains(doc.Find("tr.unknown-author").Text(), "Франко"))
	csrf, _ := doc.Find(`input[name="_csrf"]`).First().Attr("value")
	assert.Equal(t, "token123", csrf)
	href, _ := doc.Find("tr.unknown-author a").Attr("href")
	assert.Equal(t, "/blog/100%25-b", href)
	assert.Equal(t, "April 9, 2024 (2mo ago)", doc.Find("td.admin-date").First().Text())
	assert.Contains(t, doc.Find("section.admin > p").Text(), "2 posts, 2 stored")
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-04-09", "April 9, 2024"},
		{"2023-12-31T23:00:00Z", "December 31, 2023"},
		{"someday", "someday"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), tt.in)
	}
}

func TestFormatDateRelative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in, want string
	}{
		{"2024-06-15", "June 15, 2024 (Today)"},
		{"2024-06-12", "June 12, 2024 (3d ago)"},
		{"2024-04-20", "April 20, 2024 (2mo ago)"},
		{"2022-09-01", "September 1, 2022 (2y ago)"},
		{"bad", "bad"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDateRelative(tt.in, now), tt.in)
	}
}
