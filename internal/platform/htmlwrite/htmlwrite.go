// Package htmlwrite streams hand-built markup for templ components.
package htmlwrite

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer keeps the first write error so render helpers stay linear. Once a
// write fails every later call is a no-op.
type Writer struct {
	w   io.Writer
	err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped. Only pass trusted markup.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s escaped for element content.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes s escaped for a quoted attribute value.
func (h *Writer) Attr(s string) {
	h.Raw(templ.EscapeString(s))
}

// URL writes u as an attribute value after templ's URL sanitizing.
func (h *Writer) URL(u string) {
	h.Attr(string(templ.URL(u)))
}

// Component renders c in place.
func (h *Writer) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first failure.
func (h *Writer) Err() error {
	return h.err
}
