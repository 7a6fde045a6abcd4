package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// ImageService stores and serves image bytes. Reads go through an optional
// cache; the cache holds image bytes only, never identities or tokens.
type ImageService struct {
	images ports.ImageRepository
	cache  ports.ImageCache
	log    zerolog.Logger
}

func NewImageService(images ports.ImageRepository, cache ports.ImageCache, log zerolog.Logger) *ImageService {
	return &ImageService{images: images, cache: cache, log: log}
}

// Upload persists a new image. The content type must be one of the supported
// formats; anything else fails with ErrUnsupportedImageFormat.
func (s *ImageService) Upload(ctx context.Context, contentType string, data []byte) (*domain.Image, error) {
	if !domain.SupportedImageType(contentType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageFormat, contentType)
	}

	created, err := s.images.Create(ctx, &domain.Image{
		ContentType: contentType,
		Data:        data,
		SizeBytes:   int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}

	s.log.Info().
		Str("image_id", created.ID).
		Str("content_type", created.ContentType).
		Int64("size_bytes", created.SizeBytes).
		Msg("image stored")
	return created, nil
}

// Get returns the image, serving from cache when possible. Cache failures
// degrade to a store read instead of failing the request.
func (s *ImageService) Get(ctx context.Context, id string) (*domain.Image, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("image_id", id).Msg("image cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	image, err := s.images.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, image); err != nil {
			s.log.Warn().Err(err).Str("image_id", id).Msg("image cache write failed")
		}
	}
	return image, nil
}
