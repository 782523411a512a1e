// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/hyperlocal/internal/platform/httpx"
	"github.com/louisbranch/hyperlocal/internal/platform/sessioncookie"
	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	webi18n "github.com/louisbranch/hyperlocal/internal/services/web/platform/i18n"
	"github.com/louisbranch/hyperlocal/internal/services/web/shell"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	// TitleKey is the catalog key of the document title; Title is its fallback.
	TitleKey    string
	Title       string
	StatusCode  int
	CurrentPage string
	Fragment    templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes page inside the shell chrome. HTMX requests receive the
// fragment alone and trigger no identity lookup.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	ctx := webi18n.WithLocalizer(httpx.RequestContext(r), loc)
	ctx = templ.WithChildren(ctx, fragment)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := shell.MainContent().Render(ctx, &buf); err != nil {
			return err
		}
		writeHTML(w, statusCode, buf.Bytes())
		return nil
	}

	s, owned := requestShell(r, deps)
	if owned {
		defer s.Unmount()
	}
	s.Mount(ctx)
	s.Await(ctx, deps.IdentityWait)

	layout := s.Component(shell.Page{
		Title:       webi18n.Text(loc, page.TitleKey, page.Title),
		CurrentPage: page.CurrentPage,
		Lang:        lang,
		Localizer:   loc,
		ReturnTo:    returnTo(r),
	})
	if err := layout.Render(ctx, &buf); err != nil {
		return err
	}
	writeHTML(w, statusCode, buf.Bytes())
	return nil
}

// requestShell reuses the shell bound to the request, creating one when the
// server did not install it.
func requestShell(r *http.Request, deps module.Dependencies) (*shell.Shell, bool) {
	if deps.ResolveShell != nil {
		if s := deps.ResolveShell(r); s != nil {
			return s, false
		}
	}
	credential, _ := sessioncookie.Read(r)
	return shell.New(deps.Identity, credential), true
}

func returnTo(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.RequestURI()
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
