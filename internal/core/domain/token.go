package domain

import "errors"

// Token validation failures. Each check in the validator fails with its own
// kind; the HTTP boundary collapses all of them into a generic 401 so the
// caller cannot tell which check rejected the credential.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token expired")
	ErrUnknownSubject   = errors.New("unknown token subject")
)

// ErrWeakSigningKey is a configuration error: the symmetric signing key does
// not meet the minimum length for the signing algorithm. It is fatal at
// startup, never a per-request condition.
var ErrWeakSigningKey = errors.New("signing key below minimum length")
