package markdown

import (
	"strings"
	"unicode"

	"github.com/gomarkdown/markdown/ast"
)

// Excerpt returns the plain text of content cut to maxChars runes. The cut
// moves back to a space when one falls in the last fifth.
func Excerpt(content string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}
	runes := []rune(plainText(content))
	if len(runes) <= maxChars {
		return string(runes)
	}
	cut := maxChars
	for i := maxChars - 1; i >= maxChars*4/5; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut])) + "..."
}

// plainText collects the document's text, leaving out code blocks, images
// and raw HTML.
func plainText(content string) string {
	var b strings.Builder
	ast.WalkFunc(parse(content), func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.CodeBlock, *ast.Image:
			return ast.SkipChildren
		case *ast.Text:
			b.Write(n.Literal)
		case *ast.Code:
			b.Write(n.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteByte(' ')
		case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.TableCell:
			if !entering {
				b.WriteByte(' ')
			}
		}
		return ast.GoToNext
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
