package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	return rr.Body.String()
}

func TestObserveResolutionCountsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewIdentityMetrics(reg)
	m.ObserveResolution("http", OutcomeResolved, 10*time.Millisecond)
	m.ObserveResolution("http", OutcomeAnonymous, time.Millisecond)
	m.ObserveResolution("http", OutcomeAnonymous, time.Millisecond)

	body := scrape(t, reg)
	for _, want := range []string{
		`hyperlocal_identity_resolutions_total{outcome="anonymous",provider="http"} 2`,
		`hyperlocal_identity_resolutions_total{outcome="resolved",provider="http"} 1`,
		`hyperlocal_identity_resolution_duration_seconds_count{provider="http"} 3`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics body missing %q:\n%s", want, body)
		}
	}
}

func TestNilIdentityMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *IdentityMetrics
	m.ObserveResolution("http", OutcomeResolved, time.Second)
}

func TestHTTPMiddlewareRecordsStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg, "web")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := `hyperlocal_http_requests_total{method="GET",service="web",status="418"} 1`
	if body := scrape(t, reg); !strings.Contains(body, want) {
		t.Fatalf("metrics body missing %q:\n%s", want, body)
	}
}

func TestHTTPMiddlewareDefaultsImplicitStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg, "identity")
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodHead, "/up", nil))

	want := `hyperlocal_http_requests_total{method="HEAD",service="identity",status="200"} 1`
	if body := scrape(t, reg); !strings.Contains(body, want) {
		t.Fatalf("metrics body missing %q:\n%s", want, body)
	}
}

func TestNilHTTPMetricsPassesThrough(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	called := false
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatal("expected handler to be called")
	}
}
