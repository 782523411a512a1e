package shell

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
)

// Shell is the per-request identity state cell.
type Shell struct {
	provider   identity.Provider
	credential string

	mountOnce  sync.Once
	settleOnce sync.Once
	settled    chan struct{}

	mu         sync.Mutex
	resolution Resolution
	unmounted  bool
}

// New creates an unmounted shell that will resolve credential through
// provider. A nil provider leaves the shell anonymous.
func New(provider identity.Provider, credential string) *Shell {
	return &Shell{
		provider:   provider,
		credential: credential,
		settled:    make(chan struct{}),
	}
}

// Mount starts the identity lookup in the background and returns at once.
// Later calls are no-ops. The lookup is detached from ctx cancellation.
func (s *Shell) Mount(ctx context.Context) {
	if s == nil {
		return
	}
	s.mountOnce.Do(func() {
		if s.provider == nil {
			s.settle()
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		go s.resolve(context.WithoutCancel(ctx))
	})
}

func (s *Shell) resolve(ctx context.Context) {
	defer s.settle()
	user, err := s.provider.CurrentUser(ctx, s.credential)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted || s.resolution.resolved {
		return
	}
	s.resolution = Resolved(user)
}

func (s *Shell) settle() {
	s.settleOnce.Do(func() { close(s.settled) })
}

// Settled is closed once the lookup has finished, whatever its outcome.
func (s *Shell) Settled() <-chan struct{} {
	return s.settled
}

// Await blocks until the lookup settles, wait elapses, or ctx ends.
func (s *Shell) Await(ctx context.Context, wait time.Duration) {
	if s == nil || wait <= 0 {
		return
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-s.settled:
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Unmount discards any result that has not arrived yet.
func (s *Shell) Unmount() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.unmounted = true
	s.mu.Unlock()
}

// Resolution returns the current identity state.
func (s *Shell) Resolution() Resolution {
	if s == nil {
		return Unresolved()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolution
}
