package shell

import "github.com/louisbranch/hyperlocal/internal/services/web/identity"

// Resolution is the identity state of one shell: Unresolved or
// Resolved(user).
type Resolution struct {
	user     identity.User
	resolved bool
}

// Unresolved is the initial state.
func Unresolved() Resolution {
	return Resolution{}
}

// Resolved holds a successfully resolved user.
func Resolved(user identity.User) Resolution {
	return Resolution{user: user, resolved: true}
}

// User returns the resolved user and true, or false while unresolved.
func (r Resolution) User() (identity.User, bool) {
	return r.user, r.resolved
}
