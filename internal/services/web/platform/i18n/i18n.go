// Package i18n resolves the request language and message printer for web
// pages.
package i18n

import (
	"context"
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/hyperlocal/internal/platform/i18n"
	_ "github.com/louisbranch/hyperlocal/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "hyperlocal_lang"
)

// Localizer formats catalog messages for one language.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag picks the request language from the lang query parameter, then
// the language cookie, then Accept-Language. The bool reports whether the
// query parameter chose it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag, false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			tag, _ := platformi18n.MatchTags(tags...)
			return tag, false
		}
	}
	return platformi18n.DefaultTag, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    platformi18n.LocaleString(tag),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request language, persisting an explicit
// choice, and returns its printer with the locale string for <html lang>.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (Localizer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), platformi18n.LocaleString(tag)
}

// Text returns the localized message for key, or fallback when loc is nil
// or the catalog has no entry.
func Text(loc Localizer, key string, fallback string) string {
	if loc == nil {
		return fallback
	}
	value := strings.TrimSpace(loc.Sprintf(key))
	if value == "" || value == key {
		return fallback
	}
	return value
}

type localizerKey struct{}

// WithLocalizer stores loc on ctx for components rendered below it.
func WithLocalizer(ctx context.Context, loc Localizer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localizerKey{}, loc)
}

// LocalizerFromContext returns the localizer stored by WithLocalizer.
func LocalizerFromContext(ctx context.Context) Localizer {
	if ctx == nil {
		return nil
	}
	loc, _ := ctx.Value(localizerKey{}).(Localizer)
	return loc
}
