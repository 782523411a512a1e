// Package storage defines persistence contracts for the dev identity
// provider.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// User is a person who can sign in.
type User struct {
	ID        string
	FullName  string
	AvatarURL string
	Email     string
	CreatedAt time.Time
}

// Session is one signed-in browser session.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// UserStore persists users.
type UserStore interface {
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, userID string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// SessionStore persists sessions.
type SessionStore interface {
	PutSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full persistence surface of the identity provider.
type Store interface {
	UserStore
	SessionStore
}
