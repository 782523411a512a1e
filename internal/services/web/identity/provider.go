// Package identity is the web shell's client for the external identity
// capability: "who is the current user" and "where do I send them to sign in".
package identity

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrAnonymous reports that the credential does not identify a signed-in user.
var ErrAnonymous = errors.New("identity: anonymous")

// User is the current user as reported by the identity capability.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// Provider resolves session credentials into users.
//
// CurrentUser returns ErrAnonymous without any I/O when credential is empty.
// LoginURL returns "" when the provider cannot redirect to a sign-in page.
type Provider interface {
	CurrentUser(ctx context.Context, credential string) (User, error)
	LoginURL(returnTo string) string
}

// Anonymous never resolves a user.
type Anonymous struct {
	// Login is the optional external login entry point.
	Login string
}

// CurrentUser always reports ErrAnonymous.
func (Anonymous) CurrentUser(context.Context, string) (User, error) {
	return User{}, ErrAnonymous
}

// LoginURL returns the configured login entry point, if any.
func (a Anonymous) LoginURL(returnTo string) string {
	return withReturnTo(a.Login, returnTo)
}

// withReturnTo appends return_to to a login entry point. A blank or
// unparsable entry point yields "".
func withReturnTo(loginURL string, returnTo string) string {
	loginURL = strings.TrimSpace(loginURL)
	if loginURL == "" {
		return ""
	}
	parsed, err := url.Parse(loginURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	returnTo = strings.TrimSpace(returnTo)
	if returnTo == "" {
		return parsed.String()
	}
	query := parsed.Query()
	query.Set("return_to", returnTo)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func emptyCredential(credential string) bool {
	return strings.TrimSpace(credential) == ""
}
