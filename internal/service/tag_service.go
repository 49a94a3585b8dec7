package service

import (
	"context"
	"encoding/json"
	"time"

	"conduit/internal/cache"
	"conduit/internal/repository"
)

const (
	tagCacheKey = "tags:all"
	tagCacheTTL = 5 * time.Minute
)

// TagService exposes the tag catalog.
type TagService interface {
	List(ctx context.Context) ([]string, error)
	Ensure(ctx context.Context, names []string) error
}

type tagService struct {
	repo  repository.TagRepository
	cache *cache.Client
}

// NewTagService builds a TagService.
func NewTagService(repo repository.TagRepository, cache *cache.Client) TagService {
	return &tagService{repo: repo, cache: cache}
}

// List returns all tag names, serving from cache when possible.
func (s *tagService) List(ctx context.Context) ([]string, error) {
	if data, _ := s.cache.Get(ctx, tagCacheKey); data != nil {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	if payload, err := json.Marshal(names); err == nil {
		_ = s.cache.Set(ctx, tagCacheKey, payload, tagCacheTTL)
	}
	return names, nil
}

// Ensure records any tag names not yet present and invalidates the cached
// catalog when it does.
func (s *tagService) Ensure(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := s.repo.UpsertNames(ctx, names); err != nil {
		return err
	}
	return s.cache.Delete(ctx, tagCacheKey)
}
