// Package markdown renders post bodies to HTML. Fenced code is highlighted
// with chroma and raw HTML in the source is dropped.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Options controls link handling.
type Options struct {
	// RootURL is the site base URL. Absolute links into it are rewritten to
	// site paths and open in the same tab.
	RootURL string
}

// Markdown renders content as a templ component.
func Markdown(content string, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, content, opts)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of content to buf.
func RenderMarkdown(buf *bytes.Buffer, content string, opts Options) {
	if strings.TrimSpace(content) == "" {
		return
	}
	doc := parse(content)
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if link, ok := node.(*ast.Link); ok && entering {
			href, internal := siteLink(string(link.Destination), opts.RootURL)
			link.Destination = []byte(href)
			if !internal {
				link.AdditionalAttributes = append(link.AdditionalAttributes,
					`target="_blank"`, `rel="noopener noreferrer"`)
			}
		}
		return ast.GoToNext
	})
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML,
		RenderNodeHook: renderNode,
	})
	buf.Write(md.Render(doc, renderer))
}

func parse(content string) ast.Node {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	return p.Parse([]byte(content))
}

func renderNode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		level := min(max(n.Level, 1), 6)
		switch {
		case !entering:
			fmt.Fprintf(w, "</h%d>\n", level)
		case n.HeadingID == "":
			fmt.Fprintf(w, "<h%d>", level)
		default:
			id := html.EscapeString(n.HeadingID)
			fmt.Fprintf(w, `<h%d id="%s"><a href="#%s" class="anchor" aria-hidden="true"></a>`, level, id, id)
		}
		return ast.GoToNext, true
	case *ast.CodeBlock:
		if entering {
			highlight(w, n.Info, string(n.Literal))
		}
		return ast.SkipChildren, true
	case *ast.Code:
		if entering {
			fmt.Fprintf(w, `<code class="inline-code">%s</code>`, html.EscapeString(string(n.Literal)))
		}
		return ast.SkipChildren, true
	}
	return ast.GoToNext, false
}

// siteLink reports whether href points into the site at root. Absolute
// links into the site come back as a path.
func siteLink(href, root string) (string, bool) {
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") {
		return href, true
	}
	if root == "" {
		return href, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return href, false
	}
	base, err := url.Parse(strings.TrimRight(root, "/"))
	if err != nil || u.Scheme != base.Scheme || !strings.EqualFold(u.Host, base.Host) {
		return href, false
	}
	if base.Path != "" && u.Path != base.Path && !strings.HasPrefix(u.Path, base.Path+"/") {
		return href, false
	}
	u.Scheme, u.Host, u.User = "", "", nil
	path := u.String()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, true
}
