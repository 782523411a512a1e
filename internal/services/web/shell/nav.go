package shell

import (
	"github.com/louisbranch/hyperlocal/internal/platform/icons"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
)

// NavEntry is one fixed navigation destination.
type NavEntry struct {
	Icon        icons.ID
	Label       string
	LabelKey    string
	Destination string
	// Highlight marks the entry rendered as the mobile floating action button.
	Highlight bool
}

var navEntries = [...]NavEntry{
	{Icon: icons.Home, Label: "Feed", LabelKey: "shell.nav.feed", Destination: routepath.Home},
	{Icon: icons.MapPin, Label: "Map", LabelKey: "shell.nav.map", Destination: routepath.Map},
	{Icon: icons.PlusCircle, Label: "Sell", LabelKey: "shell.nav.sell", Destination: routepath.CreateListing, Highlight: true},
	{Icon: icons.MessageCircle, Label: "Chat", LabelKey: "shell.nav.chat", Destination: routepath.Messages},
	{Icon: icons.User, Label: "Profile", LabelKey: "shell.nav.profile", Destination: routepath.Profile},
}

// NavEntries returns a copy of the navigation entries in display order.
func NavEntries() []NavEntry {
	out := make([]NavEntry, len(navEntries))
	copy(out, navEntries[:])
	return out
}

// DesktopEntries returns the entries shown in the desktop header.
func DesktopEntries() []NavEntry {
	out := make([]NavEntry, 0, len(navEntries))
	for _, entry := range navEntries {
		if entry.Highlight {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// IsActive reports whether entry is the current page.
func IsActive(entry NavEntry, currentPage string) bool {
	return entry.Destination == currentPage
}
