// Package grpcapi serves the identity gRPC contract from the session service.
package grpcapi

import (
	"context"
	"errors"

	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"github.com/louisbranch/hyperlocal/internal/services/identity/service"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CurrentUserResolver resolves a session token to its user.
type CurrentUserResolver interface {
	CurrentUser(ctx context.Context, token string) (storage.User, error)
}

// IdentityService implements identityrpc.IdentityServer.
type IdentityService struct {
	resolver CurrentUserResolver
}

// NewIdentityService builds the gRPC identity service.
func NewIdentityService(resolver CurrentUserResolver) *IdentityService {
	return &IdentityService{resolver: resolver}
}

// GetCurrentUser returns the profile for the bearer credential in metadata.
func (s *IdentityService) GetCurrentUser(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.resolver == nil {
		return nil, status.Error(codes.Internal, "identity service is not configured")
	}
	token, ok := identityrpc.BearerFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "session credential is required")
	}
	user, err := s.resolver.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "session is not valid")
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Errorf(codes.Internal, "resolve current user: %v", err)
	}
	return identityrpc.EncodeProfile(identityrpc.Profile{
		ID:        user.ID,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Email:     user.Email,
	})
}
