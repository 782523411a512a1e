package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
)

type loginProvider struct {
	base string
	got  *string
}

func (loginProvider) CurrentUser(context.Context, string) (identity.User, error) {
	return identity.User{}, identity.ErrAnonymous
}

func (p loginProvider) LoginURL(returnTo string) string {
	if p.got != nil {
		*p.got = returnTo
	}
	if p.base == "" {
		return ""
	}
	return p.base + "?return_to=" + url.QueryEscape(returnTo)
}

func serveLogin(t *testing.T, deps module.Dependencies, target string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	m, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rr := httptest.NewRecorder()
	m.Handler.ServeHTTP(rr, req)
	return rr
}

func TestLoginRedirectsToProviderWithAbsoluteReturn(t *testing.T) {
	t.Parallel()

	var got string
	deps := module.Dependencies{Identity: loginProvider{base: "http://id.example.com/login", got: &got}}
	rr := serveLogin(t, deps, "/login?return_to=%2Fmap%3Fq%3D1", false)
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got != "http://example.com/map?q=1" {
		t.Fatalf("returnTo = %q, want %q", got, "http://example.com/map?q=1")
	}
	if location := rr.Header().Get("Location"); !strings.HasPrefix(location, "http://id.example.com/login?return_to=") {
		t.Fatalf("Location = %q", location)
	}
}

func TestLoginUsesHXRedirectForHTMX(t *testing.T) {
	t.Parallel()

	deps := module.Dependencies{Identity: loginProvider{base: "http://id.example.com/login"}}
	rr := serveLogin(t, deps, "/login", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); !strings.HasPrefix(got, "http://id.example.com/login") {
		t.Fatalf("HX-Redirect = %q", got)
	}
}

func TestLoginWithoutLoginURLRendersUnavailable(t *testing.T) {
	t.Parallel()

	for _, deps := range []module.Dependencies{{}, {Identity: loginProvider{}}} {
		rr := serveLogin(t, deps, "/login", false)
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
		}
		body := rr.Body.String()
		if !strings.Contains(body, `id="app-error-state"`) {
			t.Fatalf("body missing app error state")
		}
		if !strings.Contains(body, "Service unavailable") {
			t.Fatalf("body missing localized title: %q", body)
		}
		if strings.Contains(body, "not configured") {
			t.Fatalf("body leaked internal error text")
		}
	}
}

func TestLoginRejectsNonGet(t *testing.T) {
	t.Parallel()

	m, _ := New().Mount(module.Dependencies{})
	rr := httptest.NewRecorder()
	m.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != "GET, HEAD" {
		t.Fatalf("Allow = %q, want %q", got, "GET, HEAD")
	}
	if body := rr.Body.String(); !strings.Contains(body, "This page does not accept that request.") {
		t.Fatalf("body = %q, want localized message", body)
	}
}

func TestLocalPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                      "/",
		"/map":                  "/map",
		"/map?q=1":              "/map?q=1",
		"//evil.example.com/x":  "/",
		"/\\evil.example.com":   "/",
		"https://evil.example":  "/",
		"map":                   "/",
		"/login?return_to=/map": "/",
	}
	for input, want := range tests {
		if got := localPath(input); got != want {
			t.Fatalf("localPath(%q) = %q, want %q", input, got, want)
		}
	}
}
