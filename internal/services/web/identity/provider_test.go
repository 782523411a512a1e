package identity

import (
	"context"
	"errors"
	"testing"
)

func TestAnonymousNeverResolves(t *testing.T) {
	t.Parallel()

	_, err := Anonymous{}.CurrentUser(context.Background(), "token")
	if !errors.Is(err, ErrAnonymous) {
		t.Fatalf("CurrentUser() error = %v, want %v", err, ErrAnonymous)
	}
	if got := (Anonymous{}).LoginURL("/map"); got != "" {
		t.Fatalf("LoginURL() = %q, want empty", got)
	}
	if got := (Anonymous{Login: "https://id.example.test/login"}).LoginURL("/map"); got != "https://id.example.test/login?return_to=%2Fmap" {
		t.Fatalf("LoginURL() = %q", got)
	}
}

func TestWithReturnTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		login    string
		returnTo string
		want     string
	}{
		{name: "blank login", login: " ", returnTo: "/", want: ""},
		{name: "relative login", login: "/login", returnTo: "/", want: ""},
		{name: "no return", login: "https://id.example.test/login", returnTo: "", want: "https://id.example.test/login"},
		{name: "absolute return", login: "https://id.example.test/login", returnTo: "http://localhost:8080/profile", want: "https://id.example.test/login?return_to=http%3A%2F%2Flocalhost%3A8080%2Fprofile"},
		{name: "keeps existing query", login: "https://id.example.test/login?client=web", returnTo: "/", want: "https://id.example.test/login?client=web&return_to=%2F"},
	}
	for _, tc := range tests {
		if got := withReturnTo(tc.login, tc.returnTo); got != tc.want {
			t.Fatalf("%s: withReturnTo() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
