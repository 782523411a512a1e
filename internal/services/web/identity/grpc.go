package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCProvider resolves users through the identity gRPC service.
type GRPCProvider struct {
	conn    grpc.ClientConnInterface
	login   string
	timeout time.Duration
}

// NewGRPCProvider wraps an established client connection. login is the
// external login entry point used for redirects.
func NewGRPCProvider(conn grpc.ClientConnInterface, login string, timeout time.Duration) *GRPCProvider {
	return &GRPCProvider{conn: conn, login: login, timeout: timeout}
}

// CurrentUser calls IdentityService/GetCurrentUser with the credential as
// bearer metadata.
func (p *GRPCProvider) CurrentUser(ctx context.Context, credential string) (User, error) {
	if emptyCredential(credential) {
		return User{}, ErrAnonymous
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	profile, err := identityrpc.GetCurrentUser(ctx, p.conn, credential)
	if err != nil {
		switch status.Code(err) {
		case codes.Unauthenticated, codes.NotFound:
			return User{}, ErrAnonymous
		default:
			return User{}, fmt.Errorf("identity rpc: %w", err)
		}
	}
	return User{
		ID:        profile.ID,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Email:     profile.Email,
	}, nil
}

// LoginURL returns the configured login entry point with return_to.
func (p *GRPCProvider) LoginURL(returnTo string) string {
	return withReturnTo(p.login, returnTo)
}
