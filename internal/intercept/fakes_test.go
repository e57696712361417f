package intercept

import (
	"context"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/identity"
	"github.com/sharemark/sharemark/internal/store"
	"github.com/sharemark/sharemark/internal/xmpp"
)

// fakeStore serves a fixed bookmark set.
type fakeStore struct {
	list    []*domain.Bookmark
	listErr error
	getErr  error
}

func (f *fakeStore) Bookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeStore) Bookmark(ctx context.Context, key string) (*domain.Bookmark, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, bm := range f.list {
		if bm.Key() == domain.NormalizeKey(key) {
			return bm, nil
		}
	}
	return nil, store.ErrNotFound
}

// fakeResolver resolves accounts and groups from maps.
type fakeResolver struct {
	accounts       map[string]string          // username -> display name
	groups         map[string]map[string]bool // group name -> members
	displayNameErr error
}

func (f *fakeResolver) AccountExists(ctx context.Context, username string) bool {
	_, ok := f.accounts[username]
	return ok
}

func (f *fakeResolver) Group(ctx context.Context, name string) (identity.Group, error) {
	members, ok := f.groups[name]
	if !ok {
		return nil, identity.ErrGroupNotFound
	}
	return fakeGroup(members), nil
}

func (f *fakeResolver) DisplayName(ctx context.Context, username string) (string, error) {
	if f.displayNameErr != nil {
		return "", f.displayNameErr
	}
	name, ok := f.accounts[username]
	if !ok {
		return "", identity.ErrAccountNotFound
	}
	return name, nil
}

type fakeGroup map[string]bool

func (g fakeGroup) IsMember(ctx context.Context, username string) bool {
	return g[username]
}

// fakeSink records delivered stanzas.
type fakeSink struct {
	delivered []*xmpp.IQ
}

func (s *fakeSink) Deliver(iq *xmpp.IQ) {
	s.delivered = append(s.delivered, iq)
}
