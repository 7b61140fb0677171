package markdown

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var formatter = chromahtml.New(chromahtml.WithClasses(true))

// ChromaCSS returns the stylesheet for highlighted code: github for light
// color schemes, monokai for dark ones.
var ChromaCSS = sync.OnceValue(func() string {
	var out strings.Builder
	for _, s := range [][2]string{{"light", "github"}, {"dark", "monokai"}} {
		fmt.Fprintf(&out, "@media (prefers-color-scheme: %s) {\n", s[0])
		_ = formatter.WriteCSS(&out, styles.Get(s[1]))
		out.WriteString("}\n")
	}
	return out.String()
})

// highlight writes a fenced block. The first word of info names the
// language; without one the lexer is guessed from the code.
func highlight(w io.Writer, info []byte, code string) {
	it, err := lexerFor(info, code).Tokenise(nil, code)
	if err == nil {
		err = formatter.Format(w, styles.Fallback, it)
	}
	if err != nil {
		fmt.Fprintf(w, `<pre class="chroma"><code>%s</code></pre>`, html.EscapeString(code))
	}
}

func lexerFor(info []byte, code string) chroma.Lexer {
	if fields := strings.Fields(string(info)); len(fields) > 0 {
		if l := lexers.Get(strings.ToLower(fields[0])); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}
