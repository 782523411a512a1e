package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/louisbranch/hyperlocal/internal/platform/httpx"
	"github.com/louisbranch/hyperlocal/internal/platform/sessioncookie"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
	"github.com/louisbranch/hyperlocal/internal/services/web/shell"
)

// requestShellState holds the one shell a request may mount.
type requestShellState struct {
	once  sync.Once
	shell *shell.Shell
}

type requestShellStateKey struct{}

type shellResolver struct {
	provider identity.Provider
}

func newShellResolver(provider identity.Provider) shellResolver {
	return shellResolver{provider: provider}
}

// resolveShell returns the request's shell, creating it on first use so
// requests that never render chrome never touch identity.
func (r shellResolver) resolveShell(request *http.Request) *shell.Shell {
	state := requestShellStateFromRequest(request)
	if state == nil {
		return nil
	}
	state.once.Do(func() {
		credential, _ := sessioncookie.Read(request)
		state.shell = shell.New(r.provider, credential)
	})
	return state.shell
}

// withRequestShellState scopes a shell to each request and unmounts it once
// the handler returns.
func withRequestShellState() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := &requestShellState{}
			ctx := context.WithValue(r.Context(), requestShellStateKey{}, state)
			defer func() {
				if state.shell != nil {
					state.shell.Unmount()
				}
			}()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestShellStateFromRequest(r *http.Request) *requestShellState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestShellStateKey{}).(*requestShellState)
	return state
}
