// Package i18n defines the locales supported across HyperLocal services.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultTag is the locale used when no preference matches.
var DefaultTag = language.MustParse("en-US")

var supportedTags = []language.Tag{
	DefaultTag,
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns a copy of the supported locale tags in preference order.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// ParseTag maps a raw locale value to a supported tag.
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTag, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return DefaultTag, false
	}
	return MatchTags(tag)
}

// MatchTags picks the best supported tag for the preference list.
func MatchTags(preferred ...language.Tag) (language.Tag, bool) {
	if len(preferred) == 0 {
		return DefaultTag, false
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag, false
	}
	return supportedTags[index], true
}

// LocaleString renders a tag as the catalog locale identifier.
func LocaleString(tag language.Tag) string {
	for _, supported := range supportedTags {
		if supported == tag {
			return supported.String()
		}
	}
	return DefaultTag.String()
}
