// Package web hosts the HyperLocal browser-facing shell service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/httpx"
	"github.com/louisbranch/hyperlocal/internal/platform/observability"
	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
	"github.com/louisbranch/hyperlocal/internal/platform/telemetry/metrics"
	"github.com/louisbranch/hyperlocal/internal/platform/timeouts"
	webapp "github.com/louisbranch/hyperlocal/internal/services/web/app"
	"github.com/louisbranch/hyperlocal/internal/services/web/identity"
	module "github.com/louisbranch/hyperlocal/internal/services/web/module"
	"github.com/louisbranch/hyperlocal/internal/services/web/modules"
	"github.com/louisbranch/hyperlocal/internal/services/web/routepath"
	webstatic "github.com/louisbranch/hyperlocal/internal/services/web/static"
	"github.com/prometheus/client_golang/prometheus"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// Identity resolves the signed-in user. Nil serves every page anonymously.
	Identity            identity.Provider
	IdentityWait        time.Duration
	TrustForwardedProto bool
	// Metrics receives HTTP collectors and is served on /metrics. Nil uses a
	// private registry.
	Metrics *prometheus.Registry
	Logger  *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	registry := cfg.Metrics
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	resolver := newShellResolver(cfg.Identity)
	deps := module.Dependencies{
		Identity:            cfg.Identity,
		IdentityWait:        cfg.IdentityWait,
		ResolveShell:        resolver.resolveShell,
		RequestSchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	}
	h, err := webapp.Composer{}.Compose(webapp.ComposeInput{
		Dependencies: deps,
		Modules:      modules.DefaultModules(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, handleHealth)
	rootMux.Handle(http.MethodGet+" "+routepath.Metrics, metrics.Handler(registry))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID("web"),
		withRequestShellState(),
		observability.RequestLogger(logger),
		metrics.NewHTTPMetrics(registry, "web").Middleware,
	), nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.IdentityWait < 0 {
		return nil, errors.New("identity wait must not be negative")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
