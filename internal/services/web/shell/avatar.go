package shell

import (
	"unicode"
	"unicode/utf8"
)

const fallbackInitial = "U"

// BadgeInitial returns the upper-cased first character of fullName, or "U"
// when there is none. The name is not trimmed, so a leading space is the
// initial.
func BadgeInitial(fullName string) string {
	if fullName == "" {
		return fallbackInitial
	}
	r, _ := utf8.DecodeRuneInString(fullName)
	if r == utf8.RuneError {
		return fallbackInitial
	}
	return string(unicode.ToUpper(r))
}
