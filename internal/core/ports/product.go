package ports

import (
	"context"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

// ProductRepository defines product persistence.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategoryID(ctx context.Context, categoryID string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name         string
	Description  string
	Cost         domain.Cost
	Availability int
	ImageIDs     []string
}

// ProductService implements catalog product operations.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UpdateCategories(ctx context.Context, id string, categoryIDs []string) error
	UpdateImages(ctx context.Context, id string, imageIDs []string) error
	ImageIDs(ctx context.Context, id string) ([]string, error)
}
