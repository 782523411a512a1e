package templates

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	webi18n "github.com/louisbranch/hyperlocal/internal/services/web/platform/i18n"
	"golang.org/x/text/language"
)

func TestPagePlaceholderEscapesAndLocalizes(t *testing.T) {
	t.Parallel()

	ctx := webi18n.WithLocalizer(context.Background(), webi18n.Printer(language.MustParse("pt-BR")))
	var buf bytes.Buffer
	err := PagePlaceholder("map-page", Copy{Key: "page.map.title", Fallback: "Map"}, Copy{Fallback: "<b>x</b>"}).Render(ctx, &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, "<h1>Mapa</h1>") {
		t.Fatalf("body = %q, want localized heading", body)
	}
	if strings.Contains(body, "<b>") {
		t.Fatalf("body = %q, want escaped fallback", body)
	}
}

func TestErrorStateByStatus(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		http.StatusNotFound:            "Page not found",
		http.StatusServiceUnavailable:  "Service unavailable",
		http.StatusInternalServerError: "Something went wrong",
	}
	for status, want := range tests {
		var buf bytes.Buffer
		if err := ErrorState(status).Render(context.Background(), &buf); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		body := buf.String()
		if !strings.Contains(body, `id="app-error-state"`) || !strings.Contains(body, want) {
			t.Fatalf("ErrorState(%d) = %q, want %q", status, body, want)
		}
		if !strings.Contains(body, `href="/"`) {
			t.Fatalf("ErrorState(%d) missing home link", status)
		}
	}
}
