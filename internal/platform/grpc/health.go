package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	healthBackoffStart = 200 * time.Millisecond
	healthBackoffMax   = time.Second
)

// WaitForHealth polls the standard health service until service reports
// SERVING or ctx ends. The delay between probes doubles up to one second.
// logf, when set, receives one line per probe.
func WaitForHealth(ctx context.Context, conn gogrpc.ClientConnInterface, service string, logf func(string, ...any)) error {
	if conn == nil {
		return errors.New("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	delay := healthBackoffStart
	for {
		state, err := probe(ctx, client, service)
		if err == nil && state == grpc_health_v1.HealthCheckResponse_SERVING {
			logf("gRPC health service=%q status=SERVING", service)
			return nil
		}
		if err != nil {
			logf("waiting for gRPC health service=%q err=%v", service, err)
		} else {
			logf("waiting for gRPC health service=%q status=%s", service, state)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for gRPC health of %q: %w", service, ctx.Err())
		case <-timer.C:
		}
		delay = min(delay*2, healthBackoffMax)
	}
}

func probe(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	resp, err := client.Check(probeCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
