// Package app assembles the dev identity provider: storage, session service,
// HTTP and gRPC listeners.
package app

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"github.com/louisbranch/hyperlocal/internal/platform/requestmeta"
	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
	"github.com/louisbranch/hyperlocal/internal/platform/timeouts"
	"github.com/louisbranch/hyperlocal/internal/services/identity/grpcapi"
	"github.com/louisbranch/hyperlocal/internal/services/identity/httpapi"
	"github.com/louisbranch/hyperlocal/internal/services/identity/service"
	identitysqlite "github.com/louisbranch/hyperlocal/internal/services/identity/storage/sqlite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds everything the provider needs to start.
type Config struct {
	HTTPAddr            string
	GRPCAddr            string
	DBPath              string
	TokenIssuer         string
	TokenAudience       string
	SigningKey          ed25519.PrivateKey
	SessionTTL          time.Duration
	DefaultReturnURL    string
	AllowedOrigins      []string
	Seed                bool
	TrustForwardedProto bool
	CleanupInterval     time.Duration
	Logger              *log.Logger
}

// Server hosts the identity provider.
type Server struct {
	listener     net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
	httpListener net.Listener
	httpServer   *http.Server
	store        *identitysqlite.Store
	service      *service.Service
	cleanup      time.Duration
	logger       *log.Logger
}

// New opens storage, optionally seeds demo users and binds both listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(cfg.SigningKey) != ed25519.PrivateKeySize {
		return nil, errors.New("signing key is required")
	}
	if strings.TrimSpace(cfg.TokenIssuer) == "" || strings.TrimSpace(cfg.TokenAudience) == "" {
		return nil, errors.New("token issuer and audience are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed {
		if err := service.Seed(ctx, store, time.Now()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	svc, err := service.New(service.Config{
		Store: store,
		Signer: sessiontoken.Signer{
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			Key:      cfg.SigningKey,
		},
		Verifier: sessiontoken.Verifier{
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			Key:      cfg.SigningKey.Public().(ed25519.PublicKey),
		},
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init session service: %w", err)
	}
	handler, err := httpapi.NewHandler(httpapi.Config{
		Sessions:         svc,
		DefaultReturnURL: cfg.DefaultReturnURL,
		AllowedOrigins:   cfg.AllowedOrigins,
		SchemePolicy:     requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Logger:           logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init identity http handler: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on grpc addr %s: %w", cfg.GRPCAddr, err)
	}
	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}
	grpcServer, healthServer := grpcapi.NewServer(svc)

	cleanup := cfg.CleanupInterval
	if cleanup == 0 {
		cleanup = timeouts.SessionCleanup
	}
	return &Server{
		listener:     listener,
		grpcServer:   grpcServer,
		health:       healthServer,
		httpListener: httpListener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:   store,
		service: svc,
		cleanup: cleanup,
		logger:  logger,
	}, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Serve runs both listeners until ctx ends or either server fails.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("identity server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.closeStore()

	s.startCleanup(serverCtx)

	s.logger.Printf("identity gRPC listening addr=%s", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	s.logger.Printf("identity HTTP listening addr=%s", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
	shutdownGRPC := func() {
		s.health.SetServingStatus(identityrpc.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	shutdownHTTP := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}

	select {
	case <-ctx.Done():
		shutdownGRPC()
		shutdownHTTP()
		return handleErr(<-serveErr)
	case err := <-serveErr:
		shutdownHTTP()
		return handleErr(err)
	case err := <-httpErr:
		shutdownGRPC()
		grpcErr := <-serveErr
		if errors.Is(err, http.ErrServerClosed) {
			return handleErr(grpcErr)
		}
		if handled := handleErr(grpcErr); handled != nil {
			return handled
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// startCleanup prunes expired sessions until ctx ends.
func (s *Server) startCleanup(ctx context.Context) {
	if s.cleanup <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.service.PruneExpired(ctx)
				if err != nil {
					s.logger.Printf("prune expired sessions: %v", err)
					continue
				}
				if removed > 0 {
					s.logger.Printf("pruned expired sessions count=%d", removed)
				}
			}
		}
	}()
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Printf("close identity store: %v", err)
	}
}

func openStore(path string) (*identitysqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "identity.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := identitysqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open identity sqlite store: %w", err)
	}
	return store, nil
}
