// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
	"github.com/louisbranch/hyperlocal/internal/services/web/shell"
)

// ResolveShell returns the shell bound to a request, or nil when none is.
type ResolveShell func(*http.Request) *shell.Shell

// Dependencies carries shared runtime collaborators into modules.
type Dependencies struct {
	// Identity resolves the signed-in user and the login handoff.
	Identity identity.Provider
	// IdentityWait bounds how long a full page waits for identity before
	// rendering. Zero renders immediately.
	IdentityWait time.Duration
	ResolveShell ResolveShell
	// RequestSchemePolicy decides how absolute return URLs are built.
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
