// Package templates holds the page fragments rendered inside the shell.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/hyperlocal/internal/services/web/platform/i18n"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
)

// Copy is a localized string with its English fallback.
type Copy struct {
	Key      string
	Fallback string
}

// Text resolves c against the localizer carried by ctx.
func (c Copy) Text(ctx context.Context) string {
	return webi18n.Text(webi18n.LocalizerFromContext(ctx), c.Key, c.Fallback)
}

// PagePlaceholder renders the landing section of a destination owned by a
// sibling service.
func PagePlaceholder(id string, title Copy, body Copy) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section id="%s" class="page-placeholder"><h1>%s</h1><p>%s</p></section>`,
			templ.EscapeString(id),
			templ.EscapeString(title.Text(ctx)),
			templ.EscapeString(body.Text(ctx)),
		)
		return err
	})
}

// ErrorCopy returns the title and body copy for an error status.
func ErrorCopy(statusCode int) (Copy, Copy) {
	switch {
	case statusCode == http.StatusNotFound:
		return Copy{Key: "error.not_found.title", Fallback: "Page not found"},
			Copy{Key: "error.not_found.body", Fallback: "We could not find what you were looking for."}
	case statusCode == http.StatusServiceUnavailable:
		return Copy{Key: "error.unavailable.title", Fallback: "Service unavailable"},
			Copy{Key: "error.unavailable.body", Fallback: "This feature is temporarily unavailable. Please try again soon."}
	default:
		return Copy{Key: "error.internal.title", Fallback: "Something went wrong"},
			Copy{Key: "error.internal.body", Fallback: "An unexpected error occurred."}
	}
}

// ErrorState renders the app error fragment for statusCode.
func ErrorState(statusCode int) templ.Component {
	title, body := ErrorCopy(statusCode)
	back := Copy{Key: "error.back_home", Fallback: "Back to the feed"}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section id="app-error-state" class="app-error" data-status="%s"><h1>%s</h1><p>%s</p><a href="%s">%s</a></section>`,
			strconv.Itoa(statusCode),
			templ.EscapeString(title.Text(ctx)),
			templ.EscapeString(body.Text(ctx)),
			templ.EscapeString(routepath.PageURL(routepath.Home)),
			templ.EscapeString(back.Text(ctx)),
		)
		return err
	})
}
