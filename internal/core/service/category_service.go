package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// CategoryService implements catalog category operations.
type CategoryService struct {
	categories ports.CategoryRepository
	images     ports.ImageRepository
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, images ports.ImageRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, images: images, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	if err := s.checkImage(ctx, in.ImageID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.categories.Create(ctx, &domain.Category{
		Name:      in.Name,
		ImageID:   in.ImageID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in ports.CategoryInput) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkImage(ctx, in.ImageID); err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.ImageID = in.ImageID
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) checkImage(ctx context.Context, imageID string) error {
	if imageID == "" {
		return nil
	}
	existing, err := s.images.ExistingIDs(ctx, []string{imageID})
	if err != nil {
		return fmt.Errorf("check image: %w", err)
	}
	if len(existing) == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}
