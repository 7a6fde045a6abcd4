package ports

import (
	"context"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

// ImageRepository defines image persistence.
type ImageRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Image, error)
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	Create(ctx context.Context, image *domain.Image) (*domain.Image, error)
}

// ImageCache is a read-through byte cache in front of the image store.
// A cache miss returns (nil, nil); errors are reserved for transport faults.
type ImageCache interface {
	Get(ctx context.Context, id string) (*domain.Image, error)
	Set(ctx context.Context, image *domain.Image) error
}

// ImageService implements image upload and retrieval.
type ImageService interface {
	Upload(ctx context.Context, contentType string, data []byte) (*domain.Image, error)
	Get(ctx context.Context, id string) (*domain.Image, error)
}
