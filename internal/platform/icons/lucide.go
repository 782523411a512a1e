package icons

import "strings"

const lucideSymbolPrefix = "lucide-"

var lucideIconNames = map[ID]string{
	Home:          "house",
	MapPin:        "map-pin",
	PlusCircle:    "circle-plus",
	MessageCircle: "message-circle",
	User:          "user",
	Bell:          "bell",
}

// Path data copied from the Lucide icon set (ISC license), 24x24 viewBox.
var lucideSymbolBodies = map[string]string{
	"house":          `<path d="M15 21v-8a1 1 0 0 0-1-1h-4a1 1 0 0 0-1 1v8"/><path d="M3 10a2 2 0 0 1 .709-1.528l7-5.999a2 2 0 0 1 2.582 0l7 5.999A2 2 0 0 1 21 10v9a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/>`,
	"map-pin":        `<path d="M20 10c0 4.993-5.539 10.193-7.399 11.799a1 1 0 0 1-1.202 0C9.539 20.193 4 14.993 4 10a8 8 0 0 1 16 0"/><circle cx="12" cy="10" r="3"/>`,
	"circle-plus":    `<circle cx="12" cy="12" r="10"/><path d="M8 12h8"/><path d="M12 8v8"/>`,
	"message-circle": `<path d="M7.9 20A9 9 0 1 0 4 16.1L2 22Z"/>`,
	"user":           `<path d="M19 21v-2a4 4 0 0 0-4-4H9a4 4 0 0 0-4 4v2"/><circle cx="12" cy="7" r="4"/>`,
	"bell":           `<path d="M10.268 21a2 2 0 0 0 3.464 0"/><path d="M3.262 15.326A1 1 0 0 0 4 17h16a1 1 0 0 0 .74-1.673C19.41 13.956 18 12.499 18 8A6 6 0 0 0 6 8c0 4.499-1.411 5.956-2.738 7.326"/>`,
}

var lucideSprite = buildLucideSprite()

// LucideName returns the Lucide icon name for an icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "circle-plus"
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// LucideSprite returns the hidden SVG sprite markup for chrome icons.
func LucideSprite() string {
	return lucideSprite
}

func buildLucideSprite() string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" style="display:none" aria-hidden="true">`)
	for _, id := range chrome {
		name := lucideIconNames[id]
		b.WriteString(`<symbol id="`)
		b.WriteString(LucideSymbolID(name))
		b.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`)
		b.WriteString(lucideSymbolBodies[name])
		b.WriteString(`</symbol>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}
