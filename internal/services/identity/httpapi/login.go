package httpapi

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/hyperlocal/internal/platform/branding"
	"github.com/louisbranch/hyperlocal/internal/platform/htmlwrite"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
)

type loginView struct {
	Users    []storage.User
	ReturnTo string
	Message  string
}

// loginPage renders the account picker. Each account is its own form so
// signing in is a single POST.
func loginPage(view loginView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := htmlwrite.New(w)
		out.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Sign in | `)
		out.Text(branding.AppName)
		out.Raw(`</title></head><body><main class="login"><h1>Sign in to `)
		out.Text(branding.AppName)
		out.Raw(`</h1>`)
		if view.Message != "" {
			out.Raw(`<p class="login-error" role="alert">`)
			out.Text(view.Message)
			out.Raw(`</p>`)
		}
		if len(view.Users) == 0 {
			out.Raw(`<p data-login="empty">No accounts yet. Start the provider with seeding enabled.</p>`)
		}
		out.Raw(`<ul class="login-accounts">`)
		for _, user := range view.Users {
			out.Raw(`<li><form method="post" action="/login" data-user-id="`)
			out.Text(user.ID)
			out.Raw(`"><input type="hidden" name="user_id" value="`)
			out.Text(user.ID)
			out.Raw(`"><input type="hidden" name="return_to" value="`)
			out.Text(view.ReturnTo)
			out.Raw(`"><button type="submit">`)
			if user.AvatarURL != "" {
				out.Raw(`<img src="`)
				out.URL(user.AvatarURL)
				out.Raw(`" alt="" width="32" height="32"> `)
			}
			out.Text(displayName(user))
			out.Raw(`</button></form></li>`)
		}
		out.Raw(`</ul></main></body></html>`)
		return out.Err()
	})
}

func displayName(user storage.User) string {
	switch {
	case user.FullName != "":
		return user.FullName
	case user.Email != "":
		return user.Email
	default:
		return user.ID
	}
}
