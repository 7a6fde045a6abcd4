package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// minKeyBytes is the minimum signing key length for HS512: the HMAC key must
// be at least as long as the hash output (64 bytes / 512 bits).
const minKeyBytes = 64

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates HS512-signed JWTs.
//
// The signing key is checked once at construction; a short key is a fatal
// configuration error, never a silent fallback to a weaker scheme.
type TokenService struct {
	users ports.UserRepository
	key   []byte
	ttl   time.Duration
	now   func() time.Time
}

// tokenClaims is the signed claims set: subject, timestamps, and a snapshot
// of the authorities at issuance. The snapshot is informational only; the
// validator always re-derives authorities from the stored user.
type tokenClaims struct {
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenService builds a TokenService. Fails with ErrWeakSigningKey when
// the secret is shorter than minKeyBytes.
func NewTokenService(users ports.UserRepository, secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minKeyBytes {
		return nil, fmt.Errorf("token service: key is %d bytes, HS512 needs at least %d: %w",
			len(secret), minKeyBytes, domain.ErrWeakSigningKey)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		users: users,
		key:   []byte(secret),
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

// Issue signs a token for the given user: sub = username, iat = now,
// exp = now + TTL, authorities derived from the current role.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Authorities: user.Role.Authorities(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks a compact token and returns the caller's identity.
// Failure kinds, in check order:
//   - ErrMalformedToken:   not a parseable JWT
//   - ErrInvalidSignature: HMAC mismatch or wrong signing algorithm
//   - ErrExpiredToken:     wall clock past exp
//   - ErrUnknownSubject:   subject no longer resolves to a user
//
// On success the identity carries the user's *current* role and authorities,
// freshly loaded from the credential store.
func (s *TokenService) Validate(ctx context.Context, token string) (domain.Identity, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return domain.Identity{}, translateParseError(err)
	}

	if claims.Subject == "" {
		return domain.Identity{}, domain.ErrMalformedToken
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrUnknownSubject
		}
		return domain.Identity{}, fmt.Errorf("resolve subject: %w", err)
	}

	return domain.Identity{
		Username:    user.Username,
		Role:        user.Role,
		Authorities: user.Role.Authorities(),
	}, nil
}

// translateParseError maps golang-jwt parse failures onto the domain error
// taxonomy. Signature errors cover both tampering and wrong-key cases.
func translateParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrExpiredToken
	default:
		return domain.ErrMalformedToken
	}
}
