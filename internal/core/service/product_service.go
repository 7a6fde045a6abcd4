package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// ProductService implements catalog product operations.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	images     ports.ImageRepository
	log        zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	images ports.ImageRepository,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{products: products, categories: categories, images: images, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

// ListByCategory returns the products assigned to a category. The category
// must exist; an unknown id is a not-found, not an empty list.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.products.FindByCategoryID(ctx, categoryID)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := s.checkImages(ctx, in.ImageIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:         in.Name,
		Description:  in.Description,
		Cost:         in.Cost,
		Availability: in.Availability,
		ImageIDs:     in.ImageIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkImages(ctx, in.ImageIDs); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Cost = in.Cost
	product.Availability = in.Availability
	product.ImageIDs = in.ImageIDs
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// UpdateCategories replaces the product's category set. Every referenced
// category must exist.
func (s *ProductService) UpdateCategories(ctx context.Context, id string, categoryIDs []string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	found, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if len(found) != len(dedupe(categoryIDs)) {
		return domain.ErrCategoryNotFound
	}

	product.CategoryIDs = categoryIDs
	product.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, product)
}

// UpdateImages replaces the product's image set. Every referenced image must
// exist.
func (s *ProductService) UpdateImages(ctx context.Context, id string, imageIDs []string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkImages(ctx, imageIDs); err != nil {
		return err
	}

	product.ImageIDs = imageIDs
	product.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, product)
}

func (s *ProductService) ImageIDs(ctx context.Context, id string) ([]string, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.ImageIDs, nil
}

func (s *ProductService) checkImages(ctx context.Context, imageIDs []string) error {
	if len(imageIDs) == 0 {
		return nil
	}
	existing, err := s.images.ExistingIDs(ctx, imageIDs)
	if err != nil {
		return fmt.Errorf("check images: %w", err)
	}
	if len(existing) != len(dedupe(imageIDs)) {
		return domain.ErrImageNotFound
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
