package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/hyperlocal/internal/platform/telemetry/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubProvider struct {
	user  User
	err   error
	login string
}

func (s stubProvider) CurrentUser(context.Context, string) (User, error) {
	return s.user, s.err
}

func (s stubProvider) LoginURL(string) string {
	return s.login
}

func TestInstrumentedCountsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewIdentityMetrics(reg)

	ok := Instrumented(stubProvider{user: User{FullName: "Bob"}, login: "https://id.test/login"}, "http", m)
	if user, err := ok.CurrentUser(context.Background(), "tok"); err != nil || user.FullName != "Bob" {
		t.Fatalf("CurrentUser() = %+v, %v", user, err)
	}
	if got := ok.LoginURL("/"); got != "https://id.test/login" {
		t.Fatalf("LoginURL() = %q", got)
	}

	failing := Instrumented(stubProvider{err: errors.New("boom")}, "http", m)
	if _, err := failing.CurrentUser(context.Background(), "tok"); err == nil {
		t.Fatal("expected error passthrough")
	}

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, want := range []string{
		`hyperlocal_identity_resolutions_total{outcome="resolved",provider="http"} 1`,
		`hyperlocal_identity_resolutions_total{outcome="anonymous",provider="http"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestInstrumentedNilProviderIsAnonymous(t *testing.T) {
	t.Parallel()

	p := Instrumented(nil, "none", nil)
	if _, err := p.CurrentUser(context.Background(), "tok"); !errors.Is(err, ErrAnonymous) {
		t.Fatalf("CurrentUser() error = %v, want %v", err, ErrAnonymous)
	}
}
