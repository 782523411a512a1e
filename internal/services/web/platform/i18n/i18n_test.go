package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        string
		wantPersist bool
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "query wins", target: "/?lang=pt-BR", cookie: "en-US", accept: "en", want: "pt-BR", wantPersist: true},
		{name: "cookie before header", target: "/", cookie: "pt-BR", accept: "en-US", want: "pt-BR"},
		{name: "accept language", target: "/", accept: "pt;q=0.9, ja;q=0.8", want: "pt-BR"},
		{name: "unsupported query falls through", target: "/?lang=xx", accept: "pt-BR", want: "pt-BR"},
		{name: "unsupported header", target: "/", accept: "ja", want: "en-US"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
		}
		if tc.accept != "" {
			req.Header.Set("Accept-Language", tc.accept)
		}
		tag, persist := ResolveTag(req)
		if tag.String() != tc.want || persist != tc.wantPersist {
			t.Fatalf("%s: ResolveTag() = %q, %v, want %q, %v", tc.name, tag.String(), persist, tc.want, tc.wantPersist)
		}
	}
	if tag, _ := ResolveTag(nil); tag.String() != "en-US" {
		t.Fatalf("ResolveTag(nil) = %q", tag.String())
	}
}

func TestResolveLocalizerPersistsQueryChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	loc, lang := ResolveLocalizer(rr, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want %q", lang, "pt-BR")
	}
	if got := Text(loc, "shell.sign_in", "Sign In"); got != "Entrar" {
		t.Fatalf("Text(shell.sign_in) = %q, want %q", got, "Entrar")
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != LangCookieName || cookie.Value != "pt-BR" {
		t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
	}
}

func TestTextFallsBack(t *testing.T) {
	t.Parallel()

	if got := Text(nil, "shell.nav.feed", "Feed"); got != "Feed" {
		t.Fatalf("Text(nil) = %q", got)
	}
	if got := Text(Printer(language.AmericanEnglish), "missing.key", "fallback"); got != "fallback" {
		t.Fatalf("Text(missing) = %q", got)
	}
	if got := Text(Printer(language.AmericanEnglish), "shell.nav.feed", "x"); got != "Feed" {
		t.Fatalf("Text(shell.nav.feed) = %q", got)
	}
}

func TestLocalizerContext(t *testing.T) {
	t.Parallel()

	if LocalizerFromContext(context.Background()) != nil {
		t.Fatal("expected nil localizer on empty context")
	}
	ctx := WithLocalizer(context.Background(), Printer(language.MustParse("pt-BR")))
	if got := Text(LocalizerFromContext(ctx), "shell.post_item", "x"); got == "x" {
		t.Fatalf("Text() = %q, want catalog value", got)
	}
}
