package pages

import (
	"fmt"
	"net/http"

	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	apperrors "github.com/louisbranch/hyperlocal/internal/services/web/platform/errors"
	"github.com/louisbranch/hyperlocal/internal/services/web/platform/pagerender"
	"github.com/louisbranch/hyperlocal/internal/services/web/platform/weberror"
	"github.com/louisbranch/hyperlocal/internal/services/web/templates"
)

type handlers struct {
	page destination
	deps module.Dependencies
}

func newHandlers(page destination, deps module.Dependencies) handlers {
	return handlers{page: page, deps: deps}
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	err := pagerender.WritePage(w, r, h.deps, pagerender.Page{
		TitleKey:    h.page.title.Key,
		Title:       h.page.title.Fallback,
		CurrentPage: h.page.name,
		Fragment:    templates.PagePlaceholder(h.page.id+"-page", h.page.title, h.page.body),
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found.title", "no page at "+r.URL.Path), h.deps)
}

func (h handlers) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindMethodNotAllowed, "error.method_not_allowed", r.Method+" "+r.URL.Path), h.deps)
}

func errUnknownDestination(name string) error {
	return fmt.Errorf("unknown destination %q", name)
}
