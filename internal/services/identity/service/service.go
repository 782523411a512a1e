// Package service implements the dev identity provider's session flows.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/hyperlocal/internal/platform/id"
	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
	"github.com/louisbranch/hyperlocal/internal/services/identity/storage"
)

// ErrUnauthenticated reports a missing, invalid, expired or revoked session.
var ErrUnauthenticated = errors.New("unauthenticated")

// DefaultSessionTTL is used when Config.SessionTTL is not positive.
const DefaultSessionTTL = 720 * time.Hour

// Config wires the service collaborators.
type Config struct {
	Store      storage.Store
	Signer     sessiontoken.Signer
	Verifier   sessiontoken.Verifier
	SessionTTL time.Duration
	Now        func() time.Time
}

// Service resolves, creates and revokes sessions.
type Service struct {
	store    storage.Store
	signer   sessiontoken.Signer
	verifier sessiontoken.Verifier
	ttl      time.Duration
	now      func() time.Time
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token     string
	User      storage.User
	ExpiresAt time.Time
}

// New validates cfg and builds a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("identity store is required")
	}
	if !cfg.Verifier.Configured() {
		return nil, errors.New("session token verifier is not configured")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	signer := cfg.Signer
	signer.Now = now
	verifier := cfg.Verifier
	verifier.Now = now
	return &Service{store: cfg.Store, signer: signer, verifier: verifier, ttl: ttl, now: now}, nil
}

// CurrentUser resolves a session token to its user. The token must verify,
// its session must still exist and be unexpired, and its user must exist.
func (s *Service) CurrentUser(ctx context.Context, token string) (storage.User, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return storage.User{}, ErrUnauthenticated
	}
	session, err := s.store.GetSession(ctx, claims.SessionID)
	if err != nil {
		return storage.User{}, notFoundAsUnauthenticated(err)
	}
	if session.UserID != claims.UserID || !session.ExpiresAt.After(s.now().UTC()) {
		return storage.User{}, ErrUnauthenticated
	}
	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return storage.User{}, notFoundAsUnauthenticated(err)
	}
	return user, nil
}

// Login opens a session for userID and returns its signed token.
func (s *Service) Login(ctx context.Context, userID string) (LoginResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return LoginResult{}, storage.ErrNotFound
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return LoginResult{}, err
	}
	sessionID, err := id.NewID()
	if err != nil {
		return LoginResult{}, err
	}
	now := s.now().UTC()
	session := storage.Session{
		ID:        sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.PutSession(ctx, session); err != nil {
		return LoginResult{}, err
	}
	token, err := s.signer.Issue(sessiontoken.Claims{
		UserID:    user.ID,
		SessionID: session.ID,
		Name:      user.FullName,
		Picture:   user.AvatarURL,
	}, s.ttl)
	if err != nil {
		_ = s.store.DeleteSession(ctx, session.ID)
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}
	return LoginResult{Token: token, User: user, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session behind token. Unverifiable tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil
	}
	return s.store.DeleteSession(ctx, claims.SessionID)
}

// Users lists the accounts that can sign in.
func (s *Service) Users(ctx context.Context) ([]storage.User, error) {
	return s.store.ListUsers(ctx)
}

// SessionTTL returns the lifetime of new sessions.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// PruneExpired deletes sessions that have expired.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx, s.now().UTC())
}

func notFoundAsUnauthenticated(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUnauthenticated
	}
	return err
}
