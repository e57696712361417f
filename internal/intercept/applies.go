package intercept

import (
	"context"
	"errors"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/identity"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/xmpp"
)

// applies decides whether a bookmark is served to the requesting identity:
// global bookmarks always, otherwise user-list membership or membership in
// any of the listed groups. A group that fails to resolve counts as "not a
// member of that group", nothing more.
func (i *Interceptor) applies(ctx context.Context, to xmpp.JID, bm *domain.Bookmark) bool {
	if bm.Global {
		return true
	}
	if bm.HasUser(to.Node) {
		return true
	}
	for _, name := range bm.Groups {
		group, err := i.resolver.Group(ctx, name)
		if err != nil {
			if errors.Is(err, identity.ErrGroupNotFound) {
				i.logger.Debug("bookmark references unknown group",
					logger.String("group", name),
					logger.String("bookmark", bm.Value))
			} else {
				i.logger.Warn("group resolution failed",
					logger.String("group", name),
					logger.Error(err))
			}
			continue
		}
		if group.IsMember(ctx, to.Node) {
			return true
		}
	}
	return false
}
