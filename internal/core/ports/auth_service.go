package ports

import (
	"context"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

// AuthService implements registration and login. Registration never issues a
// token; the two steps are deliberately separate.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenService issues and validates signed bearer tokens.
//
// Validate re-resolves the subject against the credential store so a role
// change takes effect on the next request without reissuing the token.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(ctx context.Context, token string) (domain.Identity, error)
}
