package ports

import (
	"context"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

// CategoryRepository defines category persistence.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name    string
	ImageID string
}

// CategoryService implements catalog category operations.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
