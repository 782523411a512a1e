// Package identityrpc declares the identity gRPC contract shared by the web
// shell client and the development identity provider.
//
// Messages travel as google.protobuf.Struct so no generated stubs are needed.
package identityrpc

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "hyperlocal.identity.v1.IdentityService"
	// GetCurrentUserMethod is the full method path for GetCurrentUser.
	GetCurrentUserMethod = "/" + ServiceName + "/GetCurrentUser"

	authorizationKey = "authorization"
	bearerPrefix     = "Bearer "
)

// Profile is the wire shape of the current user.
type Profile struct {
	ID        string
	FullName  string
	AvatarURL string
	Email     string
}

// EncodeProfile converts a profile to its Struct message.
func EncodeProfile(profile Profile) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         profile.ID,
		"full_name":  profile.FullName,
		"avatar_url": profile.AvatarURL,
		"email":      profile.Email,
	})
}

// DecodeProfile reads a profile from its Struct message.
func DecodeProfile(msg *structpb.Struct) (Profile, error) {
	if msg == nil {
		return Profile{}, fmt.Errorf("profile message is required")
	}
	fields := msg.GetFields()
	profile := Profile{}
	for key, target := range map[string]*string{
		"id":         &profile.ID,
		"full_name":  &profile.FullName,
		"avatar_url": &profile.AvatarURL,
		"email":      &profile.Email,
	} {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		switch kind := value.GetKind().(type) {
		case *structpb.Value_StringValue:
			*target = kind.StringValue
		case *structpb.Value_NullValue:
		default:
			return Profile{}, fmt.Errorf("profile field %q must be a string", key)
		}
	}
	return profile, nil
}

// WithBearer attaches the session credential to outgoing call metadata.
func WithBearer(ctx context.Context, credential string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, bearerPrefix+strings.TrimSpace(credential))
}

// BearerFromContext extracts the session credential from incoming metadata.
func BearerFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, value := range md.Get(authorizationKey) {
		value = strings.TrimSpace(value)
		if len(value) > len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
			if token := strings.TrimSpace(value[len(bearerPrefix):]); token != "" {
				return token, true
			}
		}
	}
	return "", false
}

// GetCurrentUser invokes the identity service for the credential.
func GetCurrentUser(ctx context.Context, conn grpc.ClientConnInterface, credential string) (Profile, error) {
	if conn == nil {
		return Profile{}, status.Error(codes.Unavailable, "identity connection is not configured")
	}
	req, err := structpb.NewStruct(map[string]any{})
	if err != nil {
		return Profile{}, err
	}
	resp := &structpb.Struct{}
	if err := conn.Invoke(WithBearer(ctx, credential), GetCurrentUserMethod, req, resp); err != nil {
		return Profile{}, err
	}
	return DecodeProfile(resp)
}

// IdentityServer is implemented by identity service backends.
type IdentityServer interface {
	GetCurrentUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterIdentityServer registers srv on the gRPC registrar.
func RegisterIdentityServer(registrar grpc.ServiceRegistrar, srv IdentityServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

func getCurrentUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).GetCurrentUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetCurrentUserMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).GetCurrentUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the identity service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCurrentUser",
			Handler:    getCurrentUserHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hyperlocal/identity/v1/identity.proto",
}
