// Package grpc holds the shared gRPC client and server wiring.
package grpc

import (
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ClientDialOptions returns standard dial options for in-cluster clients.
// The OTel stats handler propagates trace context on every outbound call when
// a TracerProvider is registered.
func ClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// ServerOptions returns standard options for gRPC servers.
func ServerOptions() []gogrpc.ServerOption {
	return []gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
	}
}

// NewClient creates a lazily connecting client for addr. Connection
// failures surface on the first call rather than at construction.
func NewClient(addr string, extra ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("gRPC address is required")
	}
	opts := append(ClientDialOptions(), extra...)
	conn, err := gogrpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gRPC client for %s: %w", addr, err)
	}
	return conn, nil
}
