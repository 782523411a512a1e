// Package identity parses dev identity provider flags and launches it.
package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/hyperlocal/internal/platform/cmd"
	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
	"github.com/louisbranch/hyperlocal/internal/services/identity/app"
)

// Config holds the identity command configuration.
type Config struct {
	HTTPAddr            string        `env:"HYPERLOCAL_IDENTITY_HTTP_ADDR" envDefault:"localhost:8090"`
	GRPCAddr            string        `env:"HYPERLOCAL_IDENTITY_GRPC_ADDR" envDefault:"localhost:8091"`
	DBPath              string        `env:"HYPERLOCAL_IDENTITY_DB_PATH" envDefault:"data/identity.db"`
	TokenIssuer         string        `env:"HYPERLOCAL_IDENTITY_TOKEN_ISSUER" envDefault:"hyperlocal-identity"`
	TokenAudience       string        `env:"HYPERLOCAL_IDENTITY_TOKEN_AUDIENCE" envDefault:"hyperlocal-web"`
	SigningKey          string        `env:"HYPERLOCAL_IDENTITY_SIGNING_KEY"`
	SessionTTL          time.Duration `env:"HYPERLOCAL_IDENTITY_SESSION_TTL" envDefault:"720h"`
	DefaultReturnURL    string        `env:"HYPERLOCAL_IDENTITY_DEFAULT_RETURN_URL" envDefault:"http://localhost:8080/"`
	AllowedOrigins      []string      `env:"HYPERLOCAL_IDENTITY_ALLOWED_ORIGINS" envSeparator:","`
	Seed                bool          `env:"HYPERLOCAL_IDENTITY_SEED" envDefault:"true"`
	TrustForwardedProto bool          `env:"HYPERLOCAL_IDENTITY_TRUST_FORWARDED_PROTO"`
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
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Create the demo accounts on startup")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive")
	}
	origins := cfg.AllowedOrigins[:0]
	for _, origin := range cfg.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.AllowedOrigins = origins
	return cfg, nil
}

// Run starts the identity provider.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceIdentity, func(ctx context.Context) error {
		key, generated, err := signingKey(cfg.SigningKey)
		if err != nil {
			return err
		}
		if generated {
			log.Printf("generated ephemeral signing key public_key=%s", sessiontoken.EncodeKey(key.Public().(ed25519.PublicKey)))
		}
		server, err := app.New(ctx, app.Config{
			HTTPAddr:            cfg.HTTPAddr,
			GRPCAddr:            cfg.GRPCAddr,
			DBPath:              cfg.DBPath,
			TokenIssuer:         cfg.TokenIssuer,
			TokenAudience:       cfg.TokenAudience,
			SigningKey:          key,
			SessionTTL:          cfg.SessionTTL,
			DefaultReturnURL:    cfg.DefaultReturnURL,
			AllowedOrigins:      cfg.AllowedOrigins,
			Seed:                cfg.Seed,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init identity server: %w", err)
		}
		if err := server.Serve(ctx); err != nil {
			return fmt.Errorf("serve identity: %w", err)
		}
		return nil
	})
}

// signingKey decodes value, or generates a key when value is empty.
func signingKey(value string) (ed25519.PrivateKey, bool, error) {
	if strings.TrimSpace(value) == "" {
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, false, fmt.Errorf("generate signing key: %w", err)
		}
		return key, true, nil
	}
	key, err := sessiontoken.DecodePrivateKey(value)
	if err != nil {
		return nil, false, fmt.Errorf("parse signing key: %w", err)
	}
	return key, false, nil
}
