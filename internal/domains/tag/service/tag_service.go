package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"promptvault-backend/internal/domains/tag/model"
	"promptvault-backend/internal/domains/tag/repository"
	"promptvault-backend/internal/infrastructure/cache"
	"promptvault-backend/pkg/logger"
)

// =====================================================
// TAG SERVICE
// =====================================================

const (
	tagNamesCacheKey = "tags:names"
	tagNamesCacheTTL = 10 * time.Minute
)

// ServiceInterface exposes the tag registry: idempotent get-or-create and
// the shared name listing.
type ServiceInterface interface {
	// GetOrCreate normalizes rawName and returns the canonical tag row,
	// inserting it on first use. Calling it twice with the same name yields
	// the same tag identity; created reports whether this call inserted it.
	GetOrCreate(ctx context.Context, rawName string) (tag *model.Tag, created bool, err error)

	// ListNames returns every registered tag name.
	ListNames(ctx context.Context) ([]string, error)
}

type tagService struct {
	tagRepo repository.TagRepository
	cache   cache.Cache
}

func NewTagService(tagRepo repository.TagRepository, cache cache.Cache) ServiceInterface {
	return &tagService{
		tagRepo: tagRepo,
		cache:   cache,
	}
}

func (s *tagService) GetOrCreate(ctx context.Context, rawName string) (*model.Tag, bool, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, false, model.NewEmptyTagNameError()
	}

	tag := &model.Tag{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	created, err := s.tagRepo.GetOrCreate(ctx, tag)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get or create tag: %w", err)
	}

	if created {
		// A new name invalidates the cached listing.
		if err := s.cache.Delete(ctx, tagNamesCacheKey); err != nil {
			logger.Warn("Failed to invalidate tag name cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return tag, created, nil
}

func (s *tagService) ListNames(ctx context.Context) ([]string, error) {
	var cached []string
	if found, err := s.cache.Get(ctx, tagNamesCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	names, err := s.tagRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag names: %w", err)
	}
	if names == nil {
		names = []string{}
	}

	if err := s.cache.Set(ctx, tagNamesCacheKey, names, tagNamesCacheTTL); err != nil {
		logger.Warn("Failed to cache tag names", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return names, nil
}
