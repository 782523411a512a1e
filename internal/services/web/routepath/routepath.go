// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
	"unicode"
)

// Destination names understood by PageURL.
const (
	Home          = "Home"
	Map           = "Map"
	CreateListing = "CreateListing"
	Messages      = "Messages"
	Profile       = "Profile"
)

const (
	Root         = "/"
	Login        = "/login"
	Health       = "/up"
	Metrics      = "/metrics"
	StaticPrefix = "/static/"

	returnToParam = "return_to"
)

// PageURL resolves a destination name to its path. Home is the root; any
// other name maps to its kebab-case lower-case form.
func PageURL(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == Home {
		return Root
	}
	return Root + kebab(name)
}

// LoginURL returns the sign-in handoff path carrying returnTo.
func LoginURL(returnTo string) string {
	returnTo = strings.TrimSpace(returnTo)
	if returnTo == "" {
		return Login
	}
	return Login + "?" + returnToParam + "=" + url.QueryEscape(returnTo)
}

// ReturnToParam is the query parameter carrying the post-login destination.
func ReturnToParam() string {
	return returnToParam
}

func kebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 && !endsWithDash(&b) {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			if b.Len() > 0 && !endsWithDash(&b) {
				b.WriteByte('-')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func endsWithDash(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == '-'
}
