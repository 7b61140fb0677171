package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// writer keeps the first write error; later writes are no-ops.
type writer struct {
	w   io.Writer
	err error
}

func (h *writer) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *writer) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

// url writes an href or src attribute. Unsafe schemes are replaced by
// templ's sanitized placeholder.
func (h *writer) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *writer) meta(key, name, content string) {
	h.raw("<meta")
	h.attr(key, name)
	h.attr("content", content)
	h.raw(">\n")
}

func (h *writer) csrf(token string) {
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", token)
	h.raw(">\n")
}

func (h *writer) component(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}
