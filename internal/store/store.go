// Package store defines the bookmark lookup contract the interception
// engine consumes. Implementations are read-only from the engine's point
// of view; bookmark records are created and edited elsewhere.
package store

import (
	"context"
	"errors"

	"github.com/sharemark/sharemark/internal/domain"
)

// ErrNotFound is returned by Bookmark when no record matches the key.
// A miss is a normal outcome for correlation lookups, not a failure.
var ErrNotFound = errors.New("bookmark not found")

// Bookmarks is a lookup service over the server-defined bookmark set.
// Implementations must be safe for concurrent use.
type Bookmarks interface {
	// Bookmarks returns the full server-defined set.
	Bookmarks(ctx context.Context) ([]*domain.Bookmark, error)

	// Bookmark resolves one record by its correlation key (the bookmark
	// value; matching is case-insensitive). Returns ErrNotFound on a miss.
	Bookmark(ctx context.Context, key string) (*domain.Bookmark, error)
}
