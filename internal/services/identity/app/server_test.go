package app

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/hyperlocal/internal/platform/grpc"
	"github.com/louisbranch/hyperlocal/internal/platform/identityrpc"
	"github.com/louisbranch/hyperlocal/internal/services/identity/service"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return Config{
		HTTPAddr:         "127.0.0.1:0",
		GRPCAddr:         "127.0.0.1:0",
		DBPath:           filepath.Join(t.TempDir(), "nested", "identity.db"),
		TokenIssuer:      "iss",
		TokenAudience:    "aud",
		SigningKey:       priv,
		DefaultReturnURL: "http://localhost:8080/",
		Seed:             true,
		Logger:           log.New(io.Discard, "", 0),
	}
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing signing key error")
	}
	cfg := testConfig(t)
	cfg.TokenAudience = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected missing audience error")
	}
}

func TestServeAnswersHTTPAndGRPC(t *testing.T) {
	t.Parallel()

	server, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()

	login, err := server.service.Login(context.Background(), service.DemoUsers[0].ID)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, "http://"+server.HTTPAddr()+"/api/me", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/me: %v", err)
	}
	var payload struct {
		FullName string `json:"full_name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&payload)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.FullName != "Alice Example" {
		t.Fatalf("full_name = %q, want %q", payload.FullName, "Alice Example")
	}

	conn, err := platformgrpc.NewClient(server.Addr())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer conn.Close()
	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	if err := platformgrpc.WaitForHealth(callCtx, conn, identityrpc.ServiceName, nil); err != nil {
		t.Fatalf("WaitForHealth() error = %v", err)
	}
	profile, err := identityrpc.GetCurrentUser(callCtx, conn, login.Token)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if profile.FullName != "Alice Example" {
		t.Fatalf("profile = %+v", profile)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
