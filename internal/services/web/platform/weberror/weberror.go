// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	apperrors "github.com/louisbranch/hyperlocal/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/hyperlocal/internal/services/web/platform/i18n"
	"github.com/louisbranch/hyperlocal/internal/services/web/platform/pagerender"
	"github.com/louisbranch/hyperlocal/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := webi18n.Text(loc, key, ""); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized app-shell error response for full-page
// and HTMX requests. No navigation entry is active on error pages.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	title, _ := templates.ErrorCopy(statusCode)
	err := pagerender.WritePage(w, r, deps, pagerender.Page{
		TitleKey:   title.Key,
		Title:      title.Fallback,
		StatusCode: statusCode,
		Fragment:   templates.ErrorState(statusCode),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	if statusCode == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", "GET, HEAD")
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}
