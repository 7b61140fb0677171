package blogpage

import (
	"context"

	"github.com/gorilla/feeds"

	"github.com/eringen/blogpage/authors"
	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/seo"
)

// buildFeed collects every post, newest first, into a feed that renders
// as RSS or Atom.
func (a *App) buildFeed(ctx context.Context) (*feeds.Feed, error) {
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	base := seo.SiteURL(a.Config.URL)
	feed := &feeds.Feed{
		Title:       a.Config.Name,
		Link:        &feeds.Link{Href: base + "/"},
		Description: a.Config.Description,
		Id:          base + "/",
	}

	for _, p := range content.SortNewestFirst(uniquePosts(posts)) {
		postURL := seo.PostURL(base, p.Slug)
		item := &feeds.Item{
			Id:          postURL,
			Title:       p.Metadata.Title,
			Link:        &feeds.Link{Href: postURL},
			Description: summarize(p).Summary,
		}
		if p.Metadata.Author != "" {
			item.Author = &feeds.Author{Name: authors.Resolve(p.Metadata.Author).Name}
		}
		if t, err := content.ParseDate(p.Metadata.PublishedAt); err == nil {
			item.Created = t
			if t.After(feed.Created) {
				feed.Created = t
			}
		}
		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}
