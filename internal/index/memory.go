package index

import (
	"context"
	"sync"
	"time"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/store"
)

// Memory is an in-memory bookmark index keyed by correlation key. It backs
// file-based deployments where the bookmark set is reloaded wholesale from
// disk, and satisfies the same lookup contract as the Redis store.
type Memory struct {
	mu         sync.RWMutex
	bookmarks  map[string]*domain.Bookmark // correlation key -> bookmark
	lastReload time.Time
}

// NewMemory creates an empty index
func NewMemory() *Memory {
	return &Memory{
		bookmarks: make(map[string]*domain.Bookmark),
	}
}

var _ store.Bookmarks = (*Memory)(nil)

// Update replaces the full bookmark set
func (idx *Memory) Update(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.bookmarks = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, bm := range bookmarks {
		idx.bookmarks[bm.Key()] = bm
	}
	idx.lastReload = time.Now()
}

// Bookmarks returns all bookmarks
func (idx *Memory) Bookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bookmarks := make([]*domain.Bookmark, 0, len(idx.bookmarks))
	for _, bm := range idx.bookmarks {
		bookmarks = append(bookmarks, bm)
	}
	return bookmarks, nil
}

// Bookmark retrieves a bookmark by correlation key
func (idx *Memory) Bookmark(ctx context.Context, key string) (*domain.Bookmark, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bm, ok := idx.bookmarks[domain.NormalizeKey(key)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return bm, nil
}

// Count returns the number of indexed bookmarks
func (idx *Memory) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.bookmarks)
}

// LastReload returns when the index was last replaced
func (idx *Memory) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastReload
}
