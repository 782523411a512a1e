// Package httpapi serves the dev identity provider's browser and JSON
// endpoints.
package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/httpx"
	"github.com/louisbranch/hyperlocal/internal/platform/observability"
	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
	"github.com/louisbranch/hyperlocal/internal/platform/sessioncookie"
	"github.com/louisbranch/hyperlocal/internal/services/identity/service"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
)

const (
	returnToParam = "return_to"
	userIDField   = "user_id"
	bearerPrefix  = "Bearer "
)

// Sessions is the session surface the handlers need.
type Sessions interface {
	CurrentUser(ctx context.Context, token string) (storage.User, error)
	Login(ctx context.Context, userID string) (service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Users(ctx context.Context) ([]storage.User, error)
}

// Config wires the HTTP surface.
type Config struct {
	Sessions         Sessions
	DefaultReturnURL string
	AllowedOrigins   []string
	SchemePolicy     requestmeta.SchemePolicy
	Logger           *log.Logger
}

type handlers struct {
	sessions      Sessions
	defaultReturn string
	allowed       map[string]struct{}
	policy        requestmeta.SchemePolicy
	logger        *log.Logger
}

// currentUserResponse is the GET /api/me payload.
type currentUserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// NewHandler builds the routed and instrumented HTTP handler.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("sessions are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	defaultReturn := strings.TrimSpace(cfg.DefaultReturnURL)
	if defaultReturn == "" {
		defaultReturn = "/"
	}
	h := &handlers{
		sessions:      cfg.Sessions,
		defaultReturn: defaultReturn,
		allowed:       allowedOrigins(cfg.AllowedOrigins, defaultReturn),
		policy:        cfg.SchemePolicy,
		logger:        logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", h.handleCurrentUser)
	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /logout", h.handleLogout)
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID("identity"),
		observability.RequestLogger(logger),
	), nil
}

func (h *handlers) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	token, ok := credential(r)
	if !ok {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	user, err := h.sessions.CurrentUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		h.logger.Printf("current user lookup failed: %v", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, currentUserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Email:     user.Email,
	})
}

func (h *handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, h.safeReturnTo(r.URL.Query().Get(returnToParam)), "")
}

func (h *handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProofWithPolicy(r, h.policy) {
		http.Error(w, "cross-origin request rejected", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	returnTo := h.safeReturnTo(r.PostForm.Get(returnToParam))
	result, err := h.sessions.Login(r.Context(), r.PostForm.Get(userIDField))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.renderLogin(w, r, http.StatusBadRequest, returnTo, "Choose an account to continue.")
			return
		}
		h.logger.Printf("login failed: %v", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	sessioncookie.WriteWithPolicy(w, r, result.Token, time.Until(result.ExpiresAt), h.policy)
	httpx.WriteRedirect(w, r, returnTo)
}

func (h *handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProofWithPolicy(r, h.policy) {
		http.Error(w, "cross-origin request rejected", http.StatusForbidden)
		return
	}
	if token, ok := sessioncookie.Read(r); ok {
		if err := h.sessions.Logout(r.Context(), token); err != nil {
			h.logger.Printf("logout failed: %v", err)
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
	}
	sessioncookie.Clear(w, r)
	httpx.WriteRedirect(w, r, h.safeReturnTo(r.URL.Query().Get(returnToParam)))
}

func (h *handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, returnTo, message string) {
	users, err := h.sessions.Users(r.Context())
	if err != nil {
		h.logger.Printf("list users failed: %v", err)
		http.Error(w, "account list unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	view := loginView{Users: users, ReturnTo: returnTo, Message: message}
	if err := loginPage(view).Render(r.Context(), w); err != nil {
		h.logger.Printf("render login page: %v", err)
	}
}

// safeReturnTo keeps local paths and URLs on an allowed origin. Anything
// else falls back to the default return URL.
func (h *handlers) safeReturnTo(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.defaultReturn
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return h.defaultReturn
	}
	if parsed.Scheme == "" && parsed.Host == "" {
		if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
			return raw
		}
		return h.defaultReturn
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return h.defaultReturn
	}
	if _, ok := h.allowed[originOf(parsed)]; !ok {
		return h.defaultReturn
	}
	return parsed.String()
}

func credential(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		if token := strings.TrimSpace(header[len(bearerPrefix):]); token != "" {
			return token, true
		}
	}
	return sessioncookie.Read(r)
}

func allowedOrigins(origins []string, defaultReturn string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(origins)+1)
	for _, raw := range append([]string{defaultReturn}, origins...) {
		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || parsed.Host == "" {
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			continue
		}
		allowed[originOf(parsed)] = struct{}{}
	}
	return allowed
}

func originOf(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
