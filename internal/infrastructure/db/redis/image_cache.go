package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nskopt/catalog-api/internal/api/metrics"
	"github.com/nskopt/catalog-api/internal/core/domain"
)

const imageCacheTTL = time.Hour

// ImageCache caches image bytes in Redis so repeated GETs skip MongoDB.
// Keys: image:<id> for the bytes, image:<id>:ct for the content type.
// Only image data is cached here; identities and tokens never are.
type ImageCache struct {
	client *redis.Client
}

// NewImageCache creates an ImageCache wrapping the given Redis client.
func NewImageCache(client *redis.Client) *ImageCache {
	return &ImageCache{client: client}
}

// Get returns the cached image, or (nil, nil) on a miss.
func (c *ImageCache) Get(ctx context.Context, id string) (*domain.Image, error) {
	data, err := c.client.Get(ctx, c.dataKey(id)).Bytes()
	if err == redis.Nil {
		metrics.ImageCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("image cache get: %w", err)
	}

	contentType, err := c.client.Get(ctx, c.typeKey(id)).Result()
	if err == redis.Nil {
		// Bytes without a type entry: treat as a miss and let the store refill.
		metrics.ImageCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("image cache get type: %w", err)
	}

	metrics.ImageCacheTotal.WithLabelValues("hit").Inc()
	return &domain.Image{
		ID:          id,
		ContentType: contentType,
		Data:        data,
		SizeBytes:   int64(len(data)),
	}, nil
}

// Set stores the image bytes and content type, both expiring after imageCacheTTL.
func (c *ImageCache) Set(ctx context.Context, image *domain.Image) error {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.dataKey(image.ID), image.Data, imageCacheTTL)
	pipe.Set(ctx, c.typeKey(image.ID), image.ContentType, imageCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("image cache set: %w", err)
	}
	return nil
}

func (c *ImageCache) dataKey(id string) string {
	return "image:" + id
}

func (c *ImageCache) typeKey(id string) string {
	return "image:" + id + ":ct"
}
