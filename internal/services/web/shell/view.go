package shell

import (
	"strings"

	"github.com/louisbranch/hyperlocal/internal/platform/branding"
	"github.com/louisbranch/hyperlocal/internal/platform/icons"
	webi18n "github.com/louisbranch/hyperlocal/internal/services/web/platform/i18n"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
)

// Page carries the per-request inputs of one render.
type Page struct {
	Title       string
	CurrentPage string
	Lang        string
	Localizer   webi18n.Localizer
	// ReturnTo is where sign-in should come back to.
	ReturnTo string
}

// NavItem is a navigation entry prepared for rendering.
type NavItem struct {
	Destination string
	Label       string
	Href        string
	IconSymbol  string
	Active      bool
	Highlight   bool
}

// AccountView is the header account slot.
type AccountView struct {
	SignedIn   bool
	Name       string
	AvatarURL  string
	Initial    string
	ProfileURL string
	SignInURL  string
	SignInText string
}

// View is everything the layout needs.
type View struct {
	Title              string
	Lang               string
	CurrentPage        string
	AppName            string
	Monogram           string
	HomeURL            string
	HomeLabel          string
	PrimaryNavLabel    string
	NotificationsLabel string
	BellSymbol         string
	PostItemURL        string
	PostItemLabel      string
	PostItemSymbol     string
	Desktop            []NavItem
	Mobile             []NavItem
	Account            AccountView
}

// BuildView resolves labels, links and the account branch for one render.
func BuildView(res Resolution, page Page) View {
	loc := page.Localizer
	view := View{
		Title:              pageTitle(page.Title),
		Lang:               strings.TrimSpace(page.Lang),
		CurrentPage:        page.CurrentPage,
		AppName:            branding.AppName,
		Monogram:           branding.Monogram,
		HomeURL:            routepath.PageURL(routepath.Home),
		HomeLabel:          webi18n.Text(loc, "shell.home_link", "Go to the feed"),
		PrimaryNavLabel:    webi18n.Text(loc, "shell.primary_nav", "Primary"),
		NotificationsLabel: webi18n.Text(loc, "shell.notifications", "Notifications"),
		BellSymbol:         icons.LucideSymbolID(icons.LucideNameOrDefault(icons.Bell)),
		PostItemURL:        routepath.PageURL(routepath.CreateListing),
		PostItemLabel:      webi18n.Text(loc, "shell.post_item", "Post Item"),
		PostItemSymbol:     icons.LucideSymbolID(icons.LucideNameOrDefault(icons.PlusCircle)),
		Account:            buildAccount(res, page),
	}
	if view.Lang == "" {
		view.Lang = "en-US"
	}
	for _, entry := range NavEntries() {
		view.Mobile = append(view.Mobile, navItem(entry, page))
	}
	for _, entry := range DesktopEntries() {
		view.Desktop = append(view.Desktop, navItem(entry, page))
	}
	return view
}

func navItem(entry NavEntry, page Page) NavItem {
	return NavItem{
		Destination: entry.Destination,
		Label:       webi18n.Text(page.Localizer, entry.LabelKey, entry.Label),
		Href:        routepath.PageURL(entry.Destination),
		IconSymbol:  icons.LucideSymbolID(icons.LucideNameOrDefault(entry.Icon)),
		Active:      IsActive(entry, page.CurrentPage),
		Highlight:   entry.Highlight,
	}
}

func buildAccount(res Resolution, page Page) AccountView {
	user, ok := res.User()
	if !ok {
		return AccountView{
			SignInURL:  routepath.LoginURL(page.ReturnTo),
			SignInText: webi18n.Text(page.Localizer, "shell.sign_in", "Sign In"),
		}
	}
	return AccountView{
		SignedIn:   true,
		Name:       strings.TrimSpace(user.FullName),
		AvatarURL:  strings.TrimSpace(user.AvatarURL),
		Initial:    BadgeInitial(user.FullName),
		ProfileURL: routepath.PageURL(routepath.Profile),
	}
}

func pageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}
