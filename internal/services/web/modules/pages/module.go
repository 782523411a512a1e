// Package pages serves the shell's destination pages. Each page shows the
// landing content of a feature owned by a sibling service.
package pages

import (
	"net/http"

	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
	"github.com/louisbranch/hyperlocal/internal/services/web/templates"
)

type destination struct {
	id    string
	name  string
	title templates.Copy
	body  templates.Copy
}

var destinations = []destination{
	{
		id:    "home",
		name:  routepath.Home,
		title: templates.Copy{Key: "page.home.title", Fallback: "Feed"},
		body:  templates.Copy{Key: "page.home.body", Fallback: "Fresh listings from your neighborhood show up here."},
	},
	{
		id:    "map",
		name:  routepath.Map,
		title: templates.Copy{Key: "page.map.title", Fallback: "Map"},
		body:  templates.Copy{Key: "page.map.body", Fallback: "Browse what is for sale around you."},
	},
	{
		id:    "createlisting",
		name:  routepath.CreateListing,
		title: templates.Copy{Key: "page.create_listing.title", Fallback: "Post an item"},
		body:  templates.Copy{Key: "page.create_listing.body", Fallback: "Snap a photo, set a price, and reach neighbors nearby."},
	},
	{
		id:    "messages",
		name:  routepath.Messages,
		title: templates.Copy{Key: "page.messages.title", Fallback: "Chat"},
		body:  templates.Copy{Key: "page.messages.body", Fallback: "Your conversations with buyers and sellers."},
	},
	{
		id:    "profile",
		name:  routepath.Profile,
		title: templates.Copy{Key: "page.profile.title", Fallback: "Profile"},
		body:  templates.Copy{Key: "page.profile.body", Fallback: "Your listings, reviews, and account settings."},
	},
}

// Destinations returns the destination names served by this package.
func Destinations() []string {
	out := make([]string, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, d.name)
	}
	return out
}

// Module serves one destination page.
type Module struct {
	page destination
}

// New returns the module for a destination name. Unknown names yield a
// module whose Mount fails.
func New(name string) Module {
	for _, d := range destinations {
		if d.name == name {
			return Module{page: d}
		}
	}
	return Module{page: destination{id: name}}
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.page.id }

// Mount wires the destination's routes. Home also owns every path no other
// module claims and answers it with the not-found page.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.page.name == "" {
		return module.Mount{}, errUnknownDestination(m.page.id)
	}
	mux := http.NewServeMux()
	h := newHandlers(m.page, deps)
	path := routepath.PageURL(m.page.name)
	registerRoutes(mux, path, m.page.name == routepath.Home, h)
	return module.Mount{Prefix: path, Handler: mux}, nil
}
