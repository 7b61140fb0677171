package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func toHTML(src string, opts Options) string {
	var buf bytes.Buffer
	RenderMarkdown(&buf, src, opts)
	return buf.String()
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := toHTML("  \n ", Options{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdownExternalLinksOpenInNewTab(t *testing.T) {
	html := toHTML("[Wiki](https://uk.wikipedia.org/wiki/Леся_Українка)", Options{
		RootURL: "https://poetry.example.com",
	})

	if !strings.Contains(html, `target="_blank"`) {
		t.Fatalf("expected target blank, got %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("expected rel attrs for external link, got %s", html)
	}
}

func TestRenderMarkdownInternalLinksStayInTab(t *testing.T) {
	for _, src := range []string{"[next](/blog/next)", "[top](#top)"} {
		html := toHTML(src, Options{RootURL: "https://poetry.example.com"})
		if strings.Contains(html, `target="_blank"`) {
			t.Fatalf("did not expect target blank for %q, got %s", src, html)
		}
	}
}

func TestRenderMarkdownNormalizesSameSiteAbsoluteLinks(t *testing.T) {
	html := toHTML("[same](https://poetry.example.com/blog/a?x=1#k)", Options{
		RootURL: "https://poetry.example.com/",
	})

	if !strings.Contains(html, `href="/blog/a?x=1#k"`) {
		t.Fatalf("expected normalized same-site href, got %s", html)
	}
	if strings.Contains(html, `target="_blank"`) {
		t.Fatalf("did not expect target blank for same-site link, got %s", html)
	}
}

func TestSiteLinkDoesNotMatchLookalikeHost(t *testing.T) {
	href, internal := siteLink("https://poetry.example.com.evil.test/x", "https://poetry.example.com")
	if internal {
		t.Fatalf("expected lookalike host to be external, got %q", href)
	}
}

func TestRenderMarkdownHighlightsCodeBlocks(t *testing.T) {
	html := toHTML("```go\nfmt.Println(\"hello\")\n```", Options{})

	if !strings.Contains(html, `class="chroma"`) {
		t.Fatalf("expected chroma class for fenced code block, got %s", html)
	}
	if !strings.Contains(html, "Println") {
		t.Fatalf("expected code content in rendered block, got %s", html)
	}
}

func TestRenderMarkdownInlineCode(t *testing.T) {
	html := toHTML("Use `go test ./...` now.", Options{})

	if !strings.Contains(html, `<code class="inline-code">go test ./...</code>`) {
		t.Fatalf("expected inline code class, got %s", html)
	}
}

func TestRenderMarkdownHeadingAnchors(t *testing.T) {
	html := toHTML("## Hello World\n\ntext", Options{})

	if !strings.Contains(html, `<h2 id="hello-world">`) {
		t.Fatalf("expected heading id, got %s", html)
	}
	if !strings.Contains(html, `href="#hello-world"`) {
		t.Fatalf("expected heading anchor, got %s", html)
	}
	if !strings.Contains(html, "Hello World</h2>") {
		t.Fatalf("expected heading text, got %s", html)
	}
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	html := toHTML("<script>alert(1)</script>\n\nСлово", Options{})

	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %s", html)
	}
	if !strings.Contains(html, "Слово") {
		t.Fatalf("expected paragraph text, got %s", html)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("**bold**", Options{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<strong>bold</strong>") {
		t.Fatalf("expected bold markup, got %s", buf.String())
	}
}

func TestExcerptStripsMarkup(t *testing.T) {
	got := Excerpt("# Title\n\nSome **bold** and [a link](https://example.com).\n\n```go\ncode()\n```", 200)
	if got != "Title Some bold and a link." {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestExcerptTruncatesOnWordBoundary(t *testing.T) {
	if got := Excerpt("alpha beta gamma delta", 12); got != "alpha beta..." {
		t.Fatalf("expected graceful word truncation, got %q", got)
	}
}

func TestChromaCSS(t *testing.T) {
	css := ChromaCSS()
	if !strings.Contains(css, "prefers-color-scheme: light") || !strings.Contains(css, ".chroma") {
		t.Fatalf("unexpected chroma css: %.200s", css)
	}
}

func TestExcerptSkipsImagesAndRawHTML(t *testing.T) {
	got := Excerpt("![портрет](/assets/Lesya.png)\n\n<div>hidden</div>\n\n- one\n- two `code`", 200)
	if got != "one two code" {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestSiteLinkKeepsBasePath(t *testing.T) {
	if href, internal := siteLink("https://example.com/poetry/a", "https://example.com/poetry"); !internal || href != "/poetry/a" {
		t.Fatalf("expected internal /poetry/a, got %q %v", href, internal)
	}
	if _, internal := siteLink("https://example.com/prose/a", "https://example.com/poetry"); internal {
		t.Fatal("expected a link outside the base path to be external")
	}
}
