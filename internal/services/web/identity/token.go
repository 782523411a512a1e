package identity

import (
	"context"
	"errors"

	"github.com/louisbranch/hyperlocal/internal/platform/sessiontoken"
)

// TokenProvider verifies session tokens locally. It makes no network calls
// and cannot observe server-side session revocation.
type TokenProvider struct {
	verifier sessiontoken.Verifier
	login    string
}

// NewTokenProvider builds a provider from a configured verifier.
func NewTokenProvider(verifier sessiontoken.Verifier, login string) (*TokenProvider, error) {
	if !verifier.Configured() {
		return nil, errors.New("token verifier requires issuer, audience and public key")
	}
	return &TokenProvider{verifier: verifier, login: login}, nil
}

// CurrentUser reads the user from the verified name and picture claims.
func (p *TokenProvider) CurrentUser(_ context.Context, credential string) (User, error) {
	if emptyCredential(credential) {
		return User{}, ErrAnonymous
	}
	claims, err := p.verifier.Verify(credential)
	if err != nil {
		if errors.Is(err, sessiontoken.ErrInvalid) || errors.Is(err, sessiontoken.ErrExpired) || errors.Is(err, sessiontoken.ErrMismatch) {
			return User{}, ErrAnonymous
		}
		return User{}, err
	}
	return User{
		ID:        claims.UserID,
		FullName:  claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}

// LoginURL returns the configured login entry point with return_to.
func (p *TokenProvider) LoginURL(returnTo string) string {
	return withReturnTo(p.login, returnTo)
}
