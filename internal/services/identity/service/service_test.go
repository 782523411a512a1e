package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage/sqlite"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *sqlite.Store, *clock) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "identity.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	c := &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc, err := New(Config{
		Store:      store,
		Signer:     sessiontoken.Signer{Issuer: "iss", Audience: "aud", Key: priv},
		Verifier:   sessiontoken.Verifier{Issuer: "iss", Audience: "aud", Key: pub},
		SessionTTL: time.Hour,
		Now:        c.Now,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := Seed(context.Background(), store, c.now); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return svc, store, c
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected missing store error")
	}
}

func TestLoginThenCurrentUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	bob := DemoUsers[1]

	result, err := svc.Login(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" || result.User.FullName != "Bob" {
		t.Fatalf("Login() = %+v", result)
	}

	user, err := svc.CurrentUser(ctx, result.Token)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.ID != bob.ID || user.FullName != "Bob" {
		t.Fatalf("CurrentUser() = %+v", user)
	}
}

func TestCurrentUserRejectsBadTokens(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage"} {
		if _, err := svc.CurrentUser(ctx, token); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("CurrentUser(%q) error = %v, want ErrUnauthenticated", token, err)
		}
	}

	result, err := svc.Login(ctx, DemoUsers[0].ID)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	c.now = c.now.Add(2 * time.Hour)
	if _, err := svc.CurrentUser(ctx, result.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("CurrentUser(expired) error = %v, want ErrUnauthenticated", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, DemoUsers[2].ID)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.CurrentUser(ctx, result.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("CurrentUser(revoked) error = %v, want ErrUnauthenticated", err)
	}
	if err := svc.Logout(ctx, "not-a-token"); err != nil {
		t.Fatalf("Logout(invalid) error = %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, userID := range []string{"", "ghost"} {
		if _, err := svc.Login(context.Background(), userID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Login(%q) error = %v, want ErrNotFound", userID, err)
		}
	}
}

func TestSeedIsIdempotentAndOrdered(t *testing.T) {
	svc, store, c := newTestService(t)
	if err := Seed(context.Background(), store, c.now); err != nil {
		t.Fatalf("Seed() again error = %v", err)
	}
	users, err := svc.Users(context.Background())
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != len(DemoUsers) {
		t.Fatalf("len(Users()) = %d, want %d", len(users), len(DemoUsers))
	}
	for i, user := range users {
		if user.FullName != DemoUsers[i].FullName {
			t.Fatalf("user %d = %q, want %q", i, user.FullName, DemoUsers[i].FullName)
		}
	}
	if users[2].AvatarURL == "" || users[0].AvatarURL != "" {
		t.Fatal("only Carol should carry an avatar")
	}
}

func TestPruneExpired(t *testing.T) {
	svc, _, c := newTestService(t)
	if _, err := svc.Login(context.Background(), DemoUsers[0].ID); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	c.now = c.now.Add(3 * time.Hour)
	removed, err := svc.PruneExpired(context.Background())
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
}
