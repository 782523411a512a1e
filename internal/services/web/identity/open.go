package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/hyperlocal/internal/platform/grpc"
	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
	"github.com/louisbranch/hyperlocal/internal/platform/telemetry/metrics"
)

// Mode selects the identity provider implementation.
type Mode string

const (
	ModeHTTP  Mode = "http"
	ModeGRPC  Mode = "grpc"
	ModeToken Mode = "token"
	ModeNone  Mode = "none"
)

// Config selects and configures the identity provider.
type Config struct {
	Mode           Mode
	URL            string
	GRPCAddr       string
	LoginURL       string
	TokenIssuer    string
	TokenAudience  string
	TokenPublicKey string
	Timeout        time.Duration
	Metrics        *metrics.IdentityMetrics
	// Logf receives gRPC connection readiness diagnostics. Resolution
	// outcomes are never passed to it.
	Logf func(string, ...any)
}

// Open builds the configured provider, instrumented with cfg.Metrics. The
// returned close function releases any connection the provider holds. In
// grpc mode a background health wait bound to ctx reports readiness to
// cfg.Logf.
func Open(ctx context.Context, cfg Config) (Provider, func() error, error) {
	noop := func() error { return nil }
	mode := Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	if mode == "" {
		mode = ModeHTTP
	}

	var (
		provider Provider
		closeFn  = noop
	)
	switch mode {
	case ModeHTTP:
		p, err := NewHTTPProvider(cfg.URL, nil, cfg.Timeout)
		if err != nil {
			return nil, noop, err
		}
		provider = p
	case ModeGRPC:
		conn, err := platformgrpc.NewClient(cfg.GRPCAddr)
		if err != nil {
			return nil, noop, fmt.Errorf("dial identity grpc: %w", err)
		}
		provider = NewGRPCProvider(conn, cfg.LoginURL, cfg.Timeout)
		closeFn = conn.Close
		if cfg.Logf != nil && ctx != nil {
			go func() {
				if err := platformgrpc.WaitForHealth(ctx, conn, identityrpc.ServiceName, cfg.Logf); err != nil {
					cfg.Logf("identity grpc health: %v", err)
				}
			}()
		}
	case ModeToken:
		key, err := sessiontoken.DecodePublicKey(cfg.TokenPublicKey)
		if err != nil {
			return nil, noop, fmt.Errorf("token public key: %w", err)
		}
		p, err := NewTokenProvider(sessiontoken.Verifier{
			Issuer:   strings.TrimSpace(cfg.TokenIssuer),
			Audience: strings.TrimSpace(cfg.TokenAudience),
			Key:      key,
		}, cfg.LoginURL)
		if err != nil {
			return nil, noop, err
		}
		provider = p
	case ModeNone:
		provider = Anonymous{Login: cfg.LoginURL}
	default:
		return nil, noop, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
	return Instrumented(provider, string(mode), cfg.Metrics), closeFn, nil
}
