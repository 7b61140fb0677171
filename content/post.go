// Package content loads blog posts and resolves them by slug.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no post matches the requested slug.
	ErrNotFound = errors.New("content: post not found")
	// ErrInvalidPost is returned by loaders for posts missing required metadata.
	ErrInvalidPost = errors.New("content: invalid post")
)

// Metadata is the frontmatter record of a post.
type Metadata struct {
	Title       string `yaml:"title"`
	PublishedAt string `yaml:"publishedAt"`
	Summary     string `yaml:"summary"`
	Image       string `yaml:"image,omitempty"`
	Author      string `yaml:"author"`
}

// Post is a single content entry. Posts are treated as immutable once loaded.
type Post struct {
	Slug     string
	Metadata Metadata
	Content  string
}

// Link returns the site-relative path of the post page, the slug
// escaped as one path segment.
func (p Post) Link() string {
	return "/blog/" + url.PathEscape(p.Slug)
}

// Validate checks the fields rendering depends on.
func (p Post) Validate() error {
	switch {
	case strings.TrimSpace(p.Slug) == "":
		return fmt.Errorf("%w: empty slug", ErrInvalidPost)
	case strings.TrimSpace(p.Metadata.Title) == "":
		return fmt.Errorf("%w: missing title", ErrInvalidPost)
	case strings.TrimSpace(p.Metadata.PublishedAt) == "":
		return fmt.Errorf("%w: missing publishedAt", ErrInvalidPost)
	}
	return nil
}

// Provider supplies the post collection in source order.
type Provider interface {
	ListPosts(ctx context.Context) ([]Post, error)
}

// Collection is an in-memory Provider.
type Collection []Post

// ListPosts returns the collection as-is.
func (c Collection) ListPosts(context.Context) ([]Post, error) {
	return c, nil
}

// Find returns the first post whose slug equals slug.
func Find(posts []Post, slug string) (Post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// Resolve loads the collection from p and returns the post for slug, or
// ErrNotFound.
func Resolve(ctx context.Context, p Provider, slug string) (Post, error) {
	posts, err := p.ListPosts(ctx)
	if err != nil {
		return Post{}, err
	}
	post, ok := Find(posts, slug)
	if !ok {
		return Post{}, ErrNotFound
	}
	return post, nil
}

// Slugs lists the slug of every post in source order. Duplicates are reported
// once.
func Slugs(ctx context.Context, p Provider) ([]string, error) {
	posts, err := p.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(posts))
	slugs := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.Slug]; ok {
			continue
		}
		seen[post.Slug] = struct{}{}
		slugs = append(slugs, post.Slug)
	}
	return slugs, nil
}

// ParseDate parses a publishedAt value. Dates without a time part are
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "T") {
		return time.Parse("2006-01-02", s)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// SortNewestFirst returns a copy of posts ordered by publication date,
// newest first. Posts with unparseable dates sort last, keeping source order.
func SortNewestFirst(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, erri := ParseDate(sorted[i].Metadata.PublishedAt)
		tj, errj := ParseDate(sorted[j].Metadata.PublishedAt)
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return ti.After(tj)
	})
	return sorted
}
