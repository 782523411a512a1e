package modules

import (
	"github.com/louisbranch/hyperlocal/internal/services/web/modules/auth"
	"github.com/louisbranch/hyperlocal/internal/services/web/modules/pages"
)

// DefaultModules returns the destination pages plus the sign-in handoff.
func DefaultModules() []Module {
	out := make([]Module, 0, len(pages.Destinations())+1)
	for _, destination := range pages.Destinations() {
		out = append(out, pages.New(destination))
	}
	return append(out, auth.New())
}
