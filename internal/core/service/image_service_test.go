package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

type stubImageCache struct {
	entries map[string]*domain.Image
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func (c *stubImageCache) Get(_ context.Context, id string) (*domain.Image, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[id], nil
}

func (c *stubImageCache) Set(_ context.Context, image *domain.Image) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	if c.entries == nil {
		c.entries = make(map[string]*domain.Image)
	}
	c.entries[image.ID] = image
	return nil
}

func TestImageService_Upload_UnsupportedType(t *testing.T) {
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{}}, nil, zerolog.Nop())

	for _, ct := range []string{"text/plain", "image/gif", "application/json", ""} {
		_, err := svc.Upload(context.Background(), ct, []byte("data"))
		if !errors.Is(err, domain.ErrUnsupportedImageFormat) {
			t.Fatalf("%q: expected ErrUnsupportedImageFormat, got %v", ct, err)
		}
	}
}

func TestImageService_Upload_SupportedTypes(t *testing.T) {
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{}}, nil, zerolog.Nop())

	for _, ct := range []string{"image/png", "image/jpeg", "image/webp"} {
		img, err := svc.Upload(context.Background(), ct, []byte("data"))
		if err != nil {
			t.Fatalf("%q: %v", ct, err)
		}
		if img.ID == "" || img.SizeBytes != 4 {
			t.Fatalf("%q: stored image %+v", ct, img)
		}
	}
}

func TestImageService_Get_CacheHitSkipsStore(t *testing.T) {
	cached := &domain.Image{ID: "i-1", ContentType: "image/png", Data: []byte("cached")}
	cache := &stubImageCache{entries: map[string]*domain.Image{"i-1": cached}}
	// An empty store proves the hit never touched it.
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{}}, cache, zerolog.Nop())

	img, err := svc.Get(context.Background(), "i-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(img.Data, []byte("cached")) {
		t.Fatalf("got %q", img.Data)
	}
	if cache.sets != 0 {
		t.Fatalf("cache rewritten on hit")
	}
}

func TestImageService_Get_MissFillsCache(t *testing.T) {
	cache := &stubImageCache{}
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{"i-1": {}}}, cache, zerolog.Nop())

	img, err := svc.Get(context.Background(), "i-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if img.ID != "i-1" {
		t.Fatalf("got %+v", img)
	}
	if cache.sets != 1 {
		t.Fatalf("cache not filled after miss (sets=%d)", cache.sets)
	}
}

func TestImageService_Get_CacheErrorFallsBackToStore(t *testing.T) {
	cache := &stubImageCache{getErr: errors.New("connection refused")}
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{"i-1": {}}}, cache, zerolog.Nop())

	img, err := svc.Get(context.Background(), "i-1")
	if err != nil {
		t.Fatalf("cache failure must not fail the read: %v", err)
	}
	if img.ID != "i-1" {
		t.Fatalf("got %+v", img)
	}
}

func TestImageService_Get_NotFound(t *testing.T) {
	svc := NewImageService(&stubImageRepo{ids: map[string]struct{}{}}, nil, zerolog.Nop())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
