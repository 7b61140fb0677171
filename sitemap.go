package blogpage

import (
	"encoding/xml"
	"io"

	"github.com/eringen/blogpage/content"
	"github.com/eringen/blogpage/seo"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap lists the home page and one URL per distinct slug.
func (a *App) writeSitemap(w io.Writer, posts []content.Post) error {
	base := seo.SiteURL(a.Config.URL)
	urls := []sitemapURL{{Loc: base + "/"}}
	for _, p := range uniquePosts(posts) {
		u := sitemapURL{Loc: seo.PostURL(base, p.Slug)}
		if t, err := content.ParseDate(p.Metadata.PublishedAt); err == nil {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
