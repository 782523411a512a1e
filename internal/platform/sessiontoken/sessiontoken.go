// Package sessiontoken issues and verifies EdDSA-signed session tokens shared
// by the identity provider and the web shell.
package sessiontoken

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid reports a malformed, unsigned or badly signed token.
	ErrInvalid = errors.New("session token is invalid")
	// ErrExpired reports a token past its exp claim.
	ErrExpired = errors.New("session token is expired")
	// ErrMismatch reports an issuer or audience that does not match.
	ErrMismatch = errors.New("session token issuer or audience mismatch")
)

// Claims captures the validated session token contents.
type Claims struct {
	UserID    string
	SessionID string
	Name      string
	Picture   string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	Name      string `json:"name,omitempty"`
	Picture   string `json:"picture,omitempty"`
}

// Signer issues session tokens.
type Signer struct {
	Issuer   string
	Audience string
	Key      ed25519.PrivateKey
	Now      func() time.Time
}

// Issue signs a token for the claims, valid for ttl.
func (s Signer) Issue(claims Claims, ttl time.Duration) (string, error) {
	if len(s.Key) != ed25519.PrivateKeySize {
		return "", errors.New("session token signer is not configured")
	}
	if strings.TrimSpace(claims.UserID) == "" || strings.TrimSpace(claims.SessionID) == "" {
		return "", errors.New("user id and session id are required")
	}
	if ttl <= 0 {
		return "", errors.New("session ttl must be positive")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	issuedAt := now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		SessionID: claims.SessionID,
		Name:      claims.Name,
		Picture:   claims.Picture,
	})
	signed, err := token.SignedString(s.Key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verifier validates session tokens against a public key.
type Verifier struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Configured reports whether the verifier can validate tokens.
func (v Verifier) Configured() bool {
	return v.Issuer != "" && v.Audience != "" && len(v.Key) == ed25519.PublicKeySize
}

// Verify validates the token signature, issuer, audience and expiry.
func (v Verifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalid
	}
	if !v.Configured() {
		return Claims{}, errors.New("session token verifier is not configured")
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if parsed.Issuer != v.Issuer || !audienceContains(parsed.Audience, v.Audience) {
		return Claims{}, ErrMismatch
	}
	if parsed.ExpiresAt == nil || strings.TrimSpace(parsed.Subject) == "" || strings.TrimSpace(parsed.SessionID) == "" {
		return Claims{}, ErrInvalid
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	expiresAt := parsed.ExpiresAt.Time.UTC()
	if !expiresAt.After(now().UTC()) {
		return Claims{}, ErrExpired
	}

	claims := Claims{
		UserID:    parsed.Subject,
		SessionID: parsed.SessionID,
		Name:      parsed.Name,
		Picture:   parsed.Picture,
		Issuer:    parsed.Issuer,
		Audience:  v.Audience,
		ExpiresAt: expiresAt,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return fmt.Errorf("%w: signature", ErrInvalid)
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return fmt.Errorf("%w: alg", ErrInvalid)
	}
	return ErrInvalid
}

func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

// DecodePublicKey parses a base64 ed25519 public key.
func DecodePublicKey(value string) (ed25519.PublicKey, error) {
	keyBytes, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(keyBytes), nil
}

// DecodePrivateKey parses a base64 ed25519 seed or full private key.
func DecodePrivateKey(value string) (ed25519.PrivateKey, error) {
	keyBytes, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	switch len(keyBytes) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(keyBytes), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(keyBytes), nil
	default:
		return nil, fmt.Errorf("private key must be %d or %d bytes", ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

// EncodeKey renders key bytes in the base64 form accepted by the decoders.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
