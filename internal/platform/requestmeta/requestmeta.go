// Package requestmeta derives the origin a request was addressed to and
// checks same-origin proof on state-changing requests.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls which signals decide the request scheme.
// X-Forwarded-Proto is only honored when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// endpoint is a normalized scheme, host and port. The port is always
// explicit, so http://a and http://a:80 compare equal.
type endpoint struct {
	scheme string
	host   string
	port   string
}

// IsHTTPS reports whether r arrived over HTTPS, ignoring forwarded headers.
func IsHTTPS(r *http.Request) bool {
	return IsHTTPSWithPolicy(r, SchemePolicy{})
}

// IsHTTPSWithPolicy reports whether r should be treated as HTTPS.
func IsHTTPSWithPolicy(r *http.Request, policy SchemePolicy) bool {
	return r != nil && schemeOf(r, policy) == "https"
}

// Origin returns scheme://host[:port] for r, omitting default ports.
func Origin(r *http.Request, policy SchemePolicy) string {
	e, ok := requestEndpoint(r, policy)
	if !ok {
		return ""
	}
	return e.String()
}

// HasSameOriginProof reports whether Origin, or failing that Referer, names
// the request's own origin.
func HasSameOriginProof(r *http.Request) bool {
	return HasSameOriginProofWithPolicy(r, SchemePolicy{})
}

// HasSameOriginProofWithPolicy is HasSameOriginProof under policy.
func HasSameOriginProofWithPolicy(r *http.Request, policy SchemePolicy) bool {
	self, ok := requestEndpoint(r, policy)
	if !ok {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	other, ok := parseEndpoint(claimed)
	return ok && other == self
}

func (e endpoint) String() string {
	host := e.host
	if e.port != defaultPort(e.scheme) {
		host = net.JoinHostPort(host, e.port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return e.scheme + "://" + host
}

func requestEndpoint(r *http.Request, policy SchemePolicy) (endpoint, bool) {
	if r == nil {
		return endpoint{}, false
	}
	raw := r.Host
	if strings.TrimSpace(raw) == "" && r.URL != nil {
		raw = r.URL.Host
	}
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return endpoint{}, false
	}
	return normalize(schemeOf(r, policy), parsed.Hostname(), parsed.Port())
}

func parseEndpoint(raw string) (endpoint, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return endpoint{}, false
	}
	return normalize(parsed.Scheme, parsed.Hostname(), parsed.Port())
}

func normalize(scheme, host, port string) (endpoint, bool) {
	e := endpoint{
		scheme: strings.ToLower(strings.TrimSpace(scheme)),
		host:   strings.ToLower(strings.TrimSpace(host)),
		port:   strings.TrimSpace(port),
	}
	if e.port == "" {
		e.port = defaultPort(e.scheme)
	}
	if e.host == "" || e.port == "" {
		return endpoint{}, false
	}
	return e, true
}

func schemeOf(r *http.Request, policy SchemePolicy) string {
	if policy.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.URL != nil {
		switch scheme := strings.ToLower(r.URL.Scheme); scheme {
		case "http", "https":
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}
