package grpcapi

import (
	platformgrpc "github.com/louisbranch/hyperlocal/internal/platform/grpc"
	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// NewServer registers the identity and health services on a new gRPC server.
// Both the overall and the identity service statuses start as SERVING.
func NewServer(resolver CurrentUserResolver) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(platformgrpc.ServerOptions()...)
	identityrpc.RegisterIdentityServer(server, NewIdentityService(resolver))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(identityrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return server, healthServer
}
