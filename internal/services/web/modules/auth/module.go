// Package auth hands sign-in off to the identity capability.
package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/hyperlocal/internal/platform/httpx"
	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	apperrors "github.com/louisbranch/hyperlocal/internal/services/web/platform/errors"
	"github.com/louisbranch/hyperlocal/internal/services/web/platform/weberror"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
)

// Module serves the login handoff.
type Module struct{}

// New returns an auth module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Mount wires the login redirect.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, func(w http.ResponseWriter, r *http.Request) {
		handleLogin(w, r, deps)
	})
	mux.HandleFunc(routepath.Login, func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindMethodNotAllowed, "error.method_not_allowed", r.Method+" "+r.URL.Path), deps)
	})
	return module.Mount{Prefix: routepath.Login, Handler: mux}, nil
}

func handleLogin(w http.ResponseWriter, r *http.Request, deps module.Dependencies) {
	location := ""
	if deps.Identity != nil {
		location = deps.Identity.LoginURL(absoluteReturnTo(r, deps.RequestSchemePolicy))
	}
	if location == "" {
		weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindUnavailable, "error.unavailable.title", "identity login url is not configured"), deps)
		return
	}
	httpx.WriteRedirect(w, r, location)
}

// absoluteReturnTo resolves the return_to query against this host. Anything
// other than a local path falls back to the home page.
func absoluteReturnTo(r *http.Request, policy requestmeta.SchemePolicy) string {
	origin := requestmeta.Origin(r, policy)
	if origin == "" {
		return ""
	}
	return origin + localPath(r.URL.Query().Get(routepath.ReturnToParam()))
}

func localPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return routepath.Root
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return routepath.Root
	}
	if strings.HasPrefix(parsed.Path, routepath.Login) {
		return routepath.Root
	}
	return parsed.RequestURI()
}
