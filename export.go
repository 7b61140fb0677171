package blogpage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/blogpage/markdown"
)

// Export writes the site as static files under dir: index.html,
// blog/<slug>/index.html for every StaticParams slug, 404.html, the
// stylesheets, the sitemap and both feeds. It returns the number of post
// pages written.
func (a *App) Export(ctx context.Context, dir string) (int, error) {
	slugs, err := a.StaticParams(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := a.RenderHome(ctx, &buf); err != nil {
		return 0, fmt.Errorf("export home: %w", err)
	}
	if err := writeExport(dir, "index.html", buf.Bytes()); err != nil {
		return 0, err
	}

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if strings.ContainsAny(slug, `/\`) || slug == "." || slug == ".." {
			a.Logger.WarnContext(ctx, "skipping unsafe slug", slog.String("slug", slug))
			continue
		}
		buf.Reset()
		if err := a.RenderPost(ctx, &buf, slug); err != nil {
			return 0, fmt.Errorf("export %s: %w", slug, err)
		}
		if err := writeExport(dir, filepath.Join("blog", slug, "index.html"), buf.Bytes()); err != nil {
			return 0, err
		}
	}

	buf.Reset()
	if err := a.Views.NotFound(a.Site()).Render(ctx, &buf); err != nil {
		return 0, fmt.Errorf("export 404: %w", err)
	}
	if err := writeExport(dir, "404.html", buf.Bytes()); err != nil {
		return 0, err
	}

	if err := a.exportSupport(ctx, dir); err != nil {
		return 0, err
	}
	return len(slugs), nil
}

func (a *App) exportSupport(ctx context.Context, dir string) error {
	css, err := EmbeddedAssets.ReadFile("embedded/site.css")
	if err != nil {
		return err
	}
	if err := writeExport(dir, filepath.Join("public", "site.css"), css); err != nil {
		return err
	}
	if err := writeExport(dir, filepath.Join("public", "chroma.css"), []byte(markdown.ChromaCSS())); err != nil {
		return err
	}

	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := a.writeSitemap(&buf, posts); err != nil {
		return err
	}
	if err := writeExport(dir, "sitemap.xml", buf.Bytes()); err != nil {
		return err
	}

	feed, err := a.buildFeed(ctx)
	if err != nil {
		return err
	}
	rss, err := feed.ToRss()
	if err != nil {
		return err
	}
	if err := writeExport(dir, "feed.xml", []byte(rss)); err != nil {
		return err
	}
	atom, err := feed.ToAtom()
	if err != nil {
		return err
	}
	return writeExport(dir, "atom.xml", []byte(atom))
}

func writeExport(dir, name string, data []byte) error {
	dst := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	return nil
}
