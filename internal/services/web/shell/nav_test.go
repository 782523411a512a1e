package shell

import (
	"testing"

	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
	"golang.org/x/text/message"
)

func TestNavEntriesOrderAndHighlight(t *testing.T) {
	t.Parallel()

	want := []string{routepath.Home, routepath.Map, routepath.CreateListing, routepath.Messages, routepath.Profile}
	entries := NavEntries()
	if len(entries) != len(want) {
		t.Fatalf("len(NavEntries()) = %d, want %d", len(entries), len(want))
	}
	highlights := 0
	for i, entry := range entries {
		if entry.Destination != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, entry.Destination, want[i])
		}
		if entry.Highlight {
			highlights++
			if entry.Label != "Sell" {
				t.Fatalf("highlight label = %q, want %q", entry.Label, "Sell")
			}
		}
	}
	if highlights != 1 {
		t.Fatalf("highlight entries = %d, want 1", highlights)
	}
}

func TestNavEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	entries := NavEntries()
	entries[0].Destination = "mutated"
	if NavEntries()[0].Destination != routepath.Home {
		t.Fatal("NavEntries() exposed internal storage")
	}
}

func TestDesktopEntriesExcludeHighlight(t *testing.T) {
	t.Parallel()

	entries := DesktopEntries()
	if len(entries) != len(NavEntries())-1 {
		t.Fatalf("len(DesktopEntries()) = %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Highlight {
			t.Fatalf("desktop entry %q is highlighted", entry.Destination)
		}
	}
}

func TestBuildViewDesktopMatchesDesktopEntries(t *testing.T) {
	t.Parallel()

	view := BuildView(Unresolved(), Page{CurrentPage: routepath.Map})
	entries := DesktopEntries()
	if len(view.Desktop) != len(entries) {
		t.Fatalf("len(Desktop) = %d, want %d", len(view.Desktop), len(entries))
	}
	for i, entry := range entries {
		if got := view.Desktop[i].Destination; got != entry.Destination {
			t.Fatalf("Desktop[%d] = %q, want %q", i, got, entry.Destination)
		}
		if view.Desktop[i].Highlight {
			t.Fatalf("Desktop[%d] is highlighted", i)
		}
	}
	if len(view.Mobile) != len(NavEntries()) {
		t.Fatalf("len(Mobile) = %d, want %d", len(view.Mobile), len(NavEntries()))
	}
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	entry := NavEntries()[1]
	if !IsActive(entry, routepath.Map) {
		t.Fatal("IsActive(Map, Map) = false")
	}
	for _, current := range []string{"map", "", "Map ", routepath.Home} {
		if IsActive(entry, current) {
			t.Fatalf("IsActive(Map, %q) = true", current)
		}
	}
}

func TestBadgeInitial(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"alice":   "A",
		"Bob":     "B",
		" bob":    " ",
		"  carol": " ",
		"élodie":  "É",
		"":        "U",
		"   ":     " ",
		"\xffbad": "U",
	}
	for input, want := range tests {
		if got := BadgeInitial(input); got != want {
			t.Fatalf("BadgeInitial(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildViewLocalizesLabels(t *testing.T) {
	t.Parallel()

	view := BuildView(Unresolved(), Page{Localizer: fakeLocalizer{"shell.sign_in": "Entrar", "shell.nav.feed": "Início"}})
	if view.Account.SignInText != "Entrar" {
		t.Fatalf("SignInText = %q", view.Account.SignInText)
	}
	if view.Mobile[0].Label != "Início" {
		t.Fatalf("feed label = %q", view.Mobile[0].Label)
	}
	if view.Mobile[1].Label != "Map" {
		t.Fatalf("map label = %q, want fallback", view.Mobile[1].Label)
	}
	if view.Lang != "en-US" || view.Title != "HyperLocal" {
		t.Fatalf("Lang, Title = %q, %q", view.Lang, view.Title)
	}
}

type fakeLocalizer map[string]string

func (f fakeLocalizer) Sprintf(key message.Reference, _ ...any) string {
	if value, ok := f[key.(string)]; ok {
		return value
	}
	return key.(string)
}
