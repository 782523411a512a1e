package shell

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/hyperlocal/internal/platform/htmlwrite"
	"github.com/louisbranch/hyperlocal/internal/platform/icons"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
)

const stylesheetPath = routepath.StaticPrefix + "shell.css"

// Component renders the full document for page from the shell's current
// state. Children passed through templ.WithChildren fill the main region.
func (s *Shell) Component(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(BuildView(s.Resolution(), page)).Render(ctx, w)
	})
}

// Layout renders the document chrome for view.
func Layout(view View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := htmlwrite.New(w)
		out.Raw(`<!DOCTYPE html><html lang="`)
		out.Text(view.Lang)
		out.Raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		out.Text(view.Title)
		out.Raw(`</title><link rel="stylesheet" href="` + stylesheetPath + `"></head><body class="shell">`)
		out.Raw(icons.LucideSprite())
		writeHeader(out, view)
		out.Raw(`<main id="main-content" class="shell-main" data-current-page="`)
		out.Text(view.CurrentPage)
		out.Raw(`">`)
		out.Component(ctx, templ.GetChildren(ctx))
		out.Raw(`</main>`)
		writeMobileNav(out, view)
		out.Raw(`</body></html>`)
		return out.Err()
	})
}

// MainContent renders only the children, for HTMX swaps into the main region.
func MainContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templ.GetChildren(ctx).Render(ctx, w)
	})
}

func writeHeader(out *htmlwrite.Writer, view View) {
	out.Raw(`<header class="shell-header hidden md:flex"><a href="`)
	out.Attr(view.HomeURL)
	out.Raw(`" class="shell-logo" aria-label="`)
	out.Text(view.HomeLabel)
	out.Raw(`"><span class="shell-monogram">`)
	out.Text(view.Monogram)
	out.Raw(`</span><span class="shell-app-name">`)
	out.Text(view.AppName)
	out.Raw(`</span></a><nav class="shell-nav" data-nav="desktop" aria-label="`)
	out.Text(view.PrimaryNavLabel)
	out.Raw(`"><ul>`)
	for _, item := range view.Desktop {
		out.Raw(`<li>`)
		writeNavLink(out, item, "nav-link")
		out.Raw(`</li>`)
	}
	out.Raw(`</ul></nav><div class="shell-actions"><button type="button" class="shell-bell" aria-label="`)
	out.Text(view.NotificationsLabel)
	out.Raw(`">`)
	writeIcon(out, view.BellSymbol)
	out.Raw(`</button><a href="`)
	out.Attr(view.PostItemURL)
	out.Raw(`" class="shell-post-item" data-action="post-item">`)
	writeIcon(out, view.PostItemSymbol)
	out.Raw(`<span>`)
	out.Text(view.PostItemLabel)
	out.Raw(`</span></a>`)
	writeAccount(out, view.Account)
	out.Raw(`</div></header>`)
}

func writeAccount(out *htmlwrite.Writer, account AccountView) {
	if !account.SignedIn {
		out.Raw(`<a href="`)
		out.Attr(account.SignInURL)
		out.Raw(`" class="shell-sign-in" data-account="sign-in">`)
		out.Text(account.SignInText)
		out.Raw(`</a>`)
		return
	}
	out.Raw(`<a href="`)
	out.Attr(account.ProfileURL)
	out.Raw(`" class="shell-avatar" data-account="avatar">`)
	if account.AvatarURL != "" {
		out.Raw(`<img class="avatar-img" src="`)
		out.URL(account.AvatarURL)
		out.Raw(`" alt="`)
		out.Text(account.Name)
		out.Raw(`">`)
	} else {
		out.Raw(`<span class="avatar-badge" data-account="badge">`)
		out.Text(account.Initial)
		out.Raw(`</span>`)
	}
	out.Raw(`</a>`)
}

func writeMobileNav(out *htmlwrite.Writer, view View) {
	out.Raw(`<nav class="shell-bottom-nav md:hidden" data-nav="mobile" aria-label="`)
	out.Text(view.PrimaryNavLabel)
	out.Raw(`"><ul>`)
	for _, item := range view.Mobile {
		out.Raw(`<li>`)
		if item.Highlight {
			writeFAB(out, item)
		} else {
			writeNavLink(out, item, "nav-item")
		}
		out.Raw(`</li>`)
	}
	out.Raw(`</ul></nav>`)
}

func writeNavLink(out *htmlwrite.Writer, item NavItem, class string) {
	out.Raw(`<a href="`)
	out.Attr(item.Href)
	out.Raw(`" class="` + class)
	if item.Active {
		out.Raw(` active`)
	}
	out.Raw(`" data-destination="`)
	out.Text(item.Destination)
	out.Raw(`"`)
	if item.Active {
		out.Raw(` aria-current="page"`)
	}
	out.Raw(`>`)
	writeIcon(out, item.IconSymbol)
	out.Raw(`<span>`)
	out.Text(item.Label)
	out.Raw(`</span></a>`)
}

func writeFAB(out *htmlwrite.Writer, item NavItem) {
	out.Raw(`<a href="`)
	out.Attr(item.Href)
	out.Raw(`" class="nav-fab`)
	if item.Active {
		out.Raw(` active`)
	}
	out.Raw(`" data-destination="`)
	out.Text(item.Destination)
	out.Raw(`" data-highlight="true" aria-label="`)
	out.Text(item.Label)
	out.Raw(`"`)
	if item.Active {
		out.Raw(` aria-current="page"`)
	}
	out.Raw(`>`)
	writeIcon(out, item.IconSymbol)
	out.Raw(`</a>`)
}

func writeIcon(out *htmlwrite.Writer, symbol string) {
	out.Raw(`<svg class="icon" aria-hidden="true"><use href="#`)
	out.Attr(symbol)
	out.Raw(`"></use></svg>`)
}
