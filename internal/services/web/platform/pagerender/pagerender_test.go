package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/hyperlocal/internal/platform/sessioncookie"
	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
	"github.com/louisbranch/hyperlocal/internal/services/web/shell"
)

type stubProvider struct {
	user       identity.User
	block      chan struct{}
	calls      atomic.Int32
	credential atomic.Value
}

func (p *stubProvider) CurrentUser(_ context.Context, credential string) (identity.User, error) {
	p.calls.Add(1)
	p.credential.Store(credential)
	if p.block != nil {
		<-p.block
	}
	if strings.TrimSpace(credential) == "" {
		return identity.User{}, identity.ErrAnonymous
	}
	return p.user, nil
}

func (p *stubProvider) LoginURL(string) string { return "" }

func textComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func TestWritePageRendersHTMXFragmentWithoutIdentityCall(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{user: identity.User{FullName: "Bob"}}
	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "token"})
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, module.Dependencies{Identity: provider, IdentityWait: time.Second}, Page{
		Title:       "Map",
		StatusCode:  http.StatusCreated,
		CurrentPage: routepath.Map,
		Fragment:    textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if body != `<section id="fragment-root">ok</section>` {
		t.Fatalf("body = %q, want fragment only", body)
	}
	if calls := provider.calls.Load(); calls != 0 {
		t.Fatalf("CurrentUser calls = %d, want 0", calls)
	}
}

func TestWritePageRendersFullPageWithResolvedIdentity(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{user: identity.User{FullName: "Bob"}}
	req := httptest.NewRequest(http.MethodGet, "/map?near=me", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "token-1"})
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, module.Dependencies{Identity: provider, IdentityWait: 2 * time.Second}, Page{
		TitleKey:    "page.map.title",
		Title:       "Map",
		CurrentPage: routepath.Map,
		Fragment:    textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", `id="fragment-root"`, `data-account="badge">B<`, "<title>Map | HyperLocal</title>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, `data-account="sign-in"`) {
		t.Fatal("sign-in rendered for resolved user")
	}
	if got, _ := provider.credential.Load().(string); got != "token-1" {
		t.Fatalf("credential = %q, want %q", got, "token-1")
	}
}

func TestWritePageRendersSignInWhenIdentityIsSlow(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	provider := &stubProvider{user: identity.User{FullName: "Bob"}, block: block}
	req := httptest.NewRequest(http.MethodGet, "/map?near=me", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "token"})
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, module.Dependencies{Identity: provider, IdentityWait: 10 * time.Millisecond}, Page{CurrentPage: routepath.Map})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `href="/login?return_to=%2Fmap%3Fnear%3Dme"`) {
		t.Fatalf("body missing sign-in return_to link: %q", body)
	}
}

func TestWritePageReusesRequestShell(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{user: identity.User{FullName: "Ana"}}
	s := shell.New(provider, "token")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	deps := module.Dependencies{
		Identity:     provider,
		IdentityWait: 2 * time.Second,
		ResolveShell: func(*http.Request) *shell.Shell { return s },
	}
	for range 2 {
		rr := httptest.NewRecorder()
		if err := WritePage(rr, req, deps, Page{CurrentPage: routepath.Home}); err != nil {
			t.Fatalf("WritePage() error = %v", err)
		}
		if !strings.Contains(rr.Body.String(), `data-account="badge">A<`) {
			t.Fatalf("body missing badge: %q", rr.Body.String())
		}
	}
	if calls := provider.calls.Load(); calls != 1 {
		t.Fatalf("CurrentUser calls = %d, want 1", calls)
	}
}

func TestWritePageWithoutProviderIsAnonymous(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := WritePage(rr, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil), module.Dependencies{}, Page{CurrentPage: routepath.Home})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<html lang="pt-BR">`) {
		t.Fatalf("body missing pt-BR lang")
	}
	if !strings.Contains(body, ">Entrar</a>") {
		t.Fatalf("body missing localized sign-in")
	}
}

func TestWritePageNilWriterIsNoop(t *testing.T) {
	t.Parallel()

	if err := WritePage(nil, httptest.NewRequest(http.MethodGet, "/", nil), module.Dependencies{}, Page{}); err != nil {
		t.Fatalf("WritePage(nil) error = %v", err)
	}
}
