package ports

import (
	"context"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

// UserRepository is the credential store consumed by the auth core.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
