// Package cmd holds the startup plumbing shared by HyperLocal binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/config"
	"github.com/louisbranch/hyperlocal/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers used for telemetry resource names and log prefixes.
const (
	ServiceWeb      = "web"
	ServiceIdentity = "identity"
)

// ParseConfig loads environment values into cfg.
//
// A nil environ reads the process environment.
func ParseConfig[T any](cfg *T, environ map[string]string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnvMap(cfg, environ)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultOTelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}

// Main is the body of a service binary: it parses os.Args with parse, sets
// the "[SERVICE] " log prefix and runs until SIGINT or SIGTERM.
func Main[T any](service string, parse func(*flag.FlagSet, []string) (T, error), run func(context.Context, T) error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runMain(ctx, service, flag.CommandLine, os.Args[1:], parse, run); err != nil {
		stop()
		log.Fatal(err)
	}
}

func runMain[T any](ctx context.Context, service string, fs *flag.FlagSet, args []string, parse func(*flag.FlagSet, []string) (T, error), run func(context.Context, T) error) error {
	cfg, err := parse(fs, args)
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	log.SetPrefix("[" + strings.ToUpper(service) + "] ")
	if err := run(ctx, cfg); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
