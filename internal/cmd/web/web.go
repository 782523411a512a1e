// Package web parses web shell flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/louisbranch/hyperlocal/internal/platform/cmd"
	"github.com/louisbranch/hyperlocal/internal/platform/telemetry/metrics"
	"github.com/louisbranch/hyperlocal/internal/platform/timeouts"
	"github.com/louisbranch/hyperlocal/internal/services/web"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"HYPERLOCAL_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	IdentityMode        string        `env:"HYPERLOCAL_WEB_IDENTITY_MODE" envDefault:"http"`
	IdentityURL         string        `env:"HYPERLOCAL_WEB_IDENTITY_URL" envDefault:"http://localhost:8090"`
	IdentityGRPCAddr    string        `env:"HYPERLOCAL_WEB_IDENTITY_GRPC_ADDR" envDefault:"localhost:8091"`
	IdentityLoginURL    string        `env:"HYPERLOCAL_WEB_IDENTITY_LOGIN_URL"`
	TokenIssuer         string        `env:"HYPERLOCAL_WEB_TOKEN_ISSUER"`
	TokenAudience       string        `env:"HYPERLOCAL_WEB_TOKEN_AUDIENCE"`
	TokenPublicKey      string        `env:"HYPERLOCAL_WEB_TOKEN_PUBLIC_KEY"`
	IdentityWait        time.Duration `env:"HYPERLOCAL_WEB_IDENTITY_WAIT" envDefault:"300ms"`
	IdentityTimeout     time.Duration `env:"HYPERLOCAL_WEB_IDENTITY_TIMEOUT" envDefault:"5s"`
	TrustForwardedProto bool          `env:"HYPERLOCAL_WEB_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return parseConfig(fs, args, nil)
}

func parseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environ); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.IdentityMode, "identity-mode", cfg.IdentityMode, "Identity provider: http, grpc, token or none")
	fs.StringVar(&cfg.IdentityURL, "identity-url", cfg.IdentityURL, "Identity service HTTP base URL")
	fs.StringVar(&cfg.IdentityGRPCAddr, "identity-grpc-addr", cfg.IdentityGRPCAddr, "Identity service gRPC address")
	fs.DurationVar(&cfg.IdentityWait, "identity-wait", cfg.IdentityWait, "How long a page waits for identity before rendering")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.IdentityWait < 0 {
		return Config{}, fmt.Errorf("identity wait must not be negative")
	}
	if cfg.IdentityTimeout <= 0 {
		cfg.IdentityTimeout = timeouts.IdentityRequest
	}
	return cfg, nil
}

// Run starts the web shell server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		provider, closeIdentity, err := identity.Open(ctx, identityConfig(cfg, metrics.NewIdentityMetrics(registry)))
		if err != nil {
			return fmt.Errorf("init identity provider: %w", err)
		}
		defer func() {
			if err := closeIdentity(); err != nil {
				log.Printf("close identity provider: %v", err)
			}
		}()

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Identity:            provider,
			IdentityWait:        cfg.IdentityWait,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Metrics:             registry,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web listening addr=%s identity_mode=%s", server.Addr(), cfg.IdentityMode)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func identityConfig(cfg Config, m *metrics.IdentityMetrics) identity.Config {
	return identity.Config{
		Mode:           identity.Mode(cfg.IdentityMode),
		URL:            cfg.IdentityURL,
		GRPCAddr:       cfg.IdentityGRPCAddr,
		LoginURL:       cfg.IdentityLoginURL,
		TokenIssuer:    cfg.TokenIssuer,
		TokenAudience:  cfg.TokenAudience,
		TokenPublicKey: cfg.TokenPublicKey,
		Timeout:        cfg.IdentityTimeout,
		Metrics:        m,
		Logf:           log.Printf,
	}
}
