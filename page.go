package blogpage

import (
	"context"
	"errors"
	"io"

	"github.com/eringen/blogpage/authors"
	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/markdown"
	"github.com/eringen/blogpage/seo"
	"github.com/eringen/blogpage/views"
)

const summaryChars = 160

// Site returns the site-wide settings passed to every view.
func (a *App) Site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         seo.SiteURL(a.Config.URL),
		Description: a.Config.Description,
		Lang:        a.Config.Lang,
	}
}

func (a *App) sitePage() views.Page {
	return views.Page{
		Site: a.Site(),
		Meta: seo.ForSite(a.Config.Name, a.Config.Description, a.Config.URL),
	}
}

// StaticParams lists one slug per servable post page.
func (a *App) StaticParams(ctx context.Context) ([]string, error) {
	return content.Slugs(ctx, a.Cache)
}

// Metadata returns the page metadata of the post with slug, or nil when
// no post matches.
func (a *App) Metadata(ctx context.Context, slug string) (*seo.Metadata, error) {
	post, err := a.Cache.GetPost(ctx, slug)
	if errors.Is(err, content.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return seo.ForPost(&post, a.Config.URL), nil
}

// PostPage assembles the view model of the post page for slug. It returns
// content.ErrNotFound when no post matches.
func (a *App) PostPage(ctx context.Context, slug string) (views.PostData, error) {
	post, err := a.Cache.GetPost(ctx, slug)
	if err != nil {
		return views.PostData{}, err
	}
	author := authors.Resolve(post.Metadata.Author)
	return views.PostData{
		Page: views.Page{
			Site: a.Site(),
			Meta: seo.ForPost(&post, a.Config.URL),
		},
		Post:   post,
		Author: author,
		JSONLD: seo.JSONLD(seo.NewBlogPosting(post, author.Name, a.Config.URL)),
		Body:   markdown.Markdown(post.Content, markdown.Options{RootURL: a.Config.URL}),
		Date:   views.FormatDate(post.Metadata.PublishedAt),
	}, nil
}

// RenderPost writes the post page for slug to w.
func (a *App) RenderPost(ctx context.Context, w io.Writer, slug string) error {
	data, err := a.PostPage(ctx, slug)
	if err != nil {
		return err
	}
	return a.Views.Post(data).Render(ctx, w)
}

// HomePage assembles the listing, newest post first. Duplicate slugs are
// listed once, as the post their page would show.
func (a *App) HomePage(ctx context.Context) (views.HomeData, error) {
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return views.HomeData{}, err
	}
	unique := uniquePosts(posts)
	summaries := make([]views.PostSummary, 0, len(unique))
	for _, p := range content.SortNewestFirst(unique) {
		summaries = append(summaries, summarize(p))
	}
	return views.HomeData{
		Page:   a.sitePage(),
		JSONLD: seo.JSONLD(seo.NewWebsite(a.Config.Name, a.Config.Description, a.Config.URL)),
		Posts:  summaries,
	}, nil
}

// RenderHome writes the listing page to w.
func (a *App) RenderHome(ctx context.Context, w io.Writer) error {
	data, err := a.HomePage(ctx)
	if err != nil {
		return err
	}
	return a.Views.Home(data).Render(ctx, w)
}

// uniquePosts keeps the first post of each slug, the one its page shows.
func uniquePosts(posts []content.Post) []content.Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.Slug]; dup {
			continue
		}
		seen[p.Slug] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

func summarize(p content.Post) views.PostSummary {
	summary := p.Metadata.Summary
	if summary == "" {
		summary = markdown.Excerpt(p.Content, summaryChars)
	}
	var author string
	if p.Metadata.Author != "" {
		author = authors.Resolve(p.Metadata.Author).Name
	}
	return views.PostSummary{
		Title:   p.Metadata.Title,
		Link:    p.Link(),
		Date:    views.FormatDate(p.Metadata.PublishedAt),
		Summary: summary,
		Author:  author,
	}
}
