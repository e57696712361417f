package index

import (
	"context"
	"errors"
	"testing"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/store"
)

func TestMemoryUpdateAndLookup(t *testing.T) {
	idx := NewMemory()

	if !idx.LastReload().IsZero() {
		t.Error("fresh index should have no reload timestamp")
	}

	idx.Update([]*domain.Bookmark{
		{Type: domain.TypeURL, Name: "Wiki", Value: "https://wiki.example.com"},
		{Type: domain.TypeConference, Name: "All hands", Value: "AllHands@Conference.Example.com"},
	})

	if got := idx.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if idx.LastReload().IsZero() {
		t.Error("Update should stamp the reload time")
	}

	all, err := idx.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("Bookmarks() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Bookmarks() returned %d entries, want 2", len(all))
	}
}

func TestMemoryLookupIsCaseInsensitive(t *testing.T) {
	idx := NewMemory()
	idx.Update([]*domain.Bookmark{
		{Type: domain.TypeConference, Name: "All hands", Value: "AllHands@Conference.Example.com"},
	})

	bm, err := idx.Bookmark(context.Background(), "allhands@conference.example.com")
	if err != nil {
		t.Fatalf("Bookmark() error: %v", err)
	}
	if bm.Name != "All hands" {
		t.Errorf("Name = %q", bm.Name)
	}
}

func TestMemoryLookupMiss(t *testing.T) {
	idx := NewMemory()

	_, err := idx.Bookmark(context.Background(), "missing@conference.example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected store.ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdateReplacesWholesale(t *testing.T) {
	idx := NewMemory()
	idx.Update([]*domain.Bookmark{
		{Type: domain.TypeURL, Value: "https://old.example.com"},
	})
	idx.Update([]*domain.Bookmark{
		{Type: domain.TypeURL, Value: "https://new.example.com"},
	})

	if got := idx.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1 after replacement", got)
	}
	if _, err := idx.Bookmark(context.Background(), "https://old.example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Error("stale entries must be dropped on update")
	}
}
