// Package sessioncookie owns the HyperLocal session cookie. The identity
// provider writes it; the web shell only reads it as an opaque credential.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
)

// Name is the session cookie name shared by both services.
const Name = "hyperlocal_session"

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the session cookie. A positive ttl bounds the cookie lifetime.
func Write(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	WriteWithPolicy(w, r, token, ttl, requestmeta.SchemePolicy{})
}

// WriteWithPolicy sets the session cookie using policy to decide Secure.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
