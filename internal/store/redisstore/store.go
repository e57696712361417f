package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/store"
)

// Store reads bookmark records out of Redis. Records are written by the
// host server's management surface; this side only looks them up.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed bookmark store
func New(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

var _ store.Bookmarks = (*Store)(nil)

// Bookmarks retrieves all bookmarks from Redis
func (s *Store) Bookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	// Get all bookmark correlation keys
	keys, err := s.client.SMembers(ctx, AllBookmarksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark keys: %w", err)
	}

	if len(keys) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(keys))
	for _, key := range keys {
		bookmark, err := s.Bookmark(ctx, key)
		if err != nil {
			// Skip bookmarks that couldn't be retrieved
			continue
		}
		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, nil
}

// Bookmark retrieves a bookmark from Redis by correlation key
func (s *Store) Bookmark(ctx context.Context, key string) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(domain.NormalizeKey(key))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var bookmark domain.Bookmark
	if err := json.Unmarshal(data, &bookmark); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}

	return &bookmark, nil
}
