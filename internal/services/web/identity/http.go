package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	currentUserPath = "/api/me"
	loginPath       = "/login"
	maxBodyBytes    = 64 << 10
)

// HTTPProvider resolves users over the identity provider's JSON API.
type HTTPProvider struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPProvider builds a provider for baseURL. A nil client gets one bounded
// by timeout.
func NewHTTPProvider(baseURL string, client *http.Client, timeout time.Duration) (*HTTPProvider, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse identity url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("identity url %q must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("identity url %q must include a host", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProvider{base: parsed, client: client}, nil
}

// CurrentUser fetches the user for credential from GET /api/me.
func (p *HTTPProvider) CurrentUser(ctx context.Context, credential string) (User, error) {
	if emptyCredential(credential) {
		return User{}, ErrAnonymous
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(currentUserPath), nil)
	if err != nil {
		return User{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(credential))
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := p.client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("identity request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return User{}, ErrAnonymous
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return User{}, fmt.Errorf("identity request: unexpected status %d", resp.StatusCode)
	}

	var user *User
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode identity response: %w", err)
	}
	// A null body means nobody is signed in.
	if user == nil {
		return User{}, ErrAnonymous
	}
	return *user, nil
}

// LoginURL returns {base}/login?return_to=<returnTo>.
func (p *HTTPProvider) LoginURL(returnTo string) string {
	return withReturnTo(p.endpoint(loginPath), returnTo)
}

func (p *HTTPProvider) endpoint(path string) string {
	endpoint := *p.base
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	endpoint.RawQuery = ""
	return endpoint.String()
}
