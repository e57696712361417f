package intercept

import (
	"context"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/xmpp"
)

// urlFlagKeys are the boolean extensions serialized on url bookmarks.
var urlFlagKeys = []string{"rss", "webapp", "collabapp", "homepage"}

// meetFlagKeys are the meeting extensions serialized on conference
// bookmarks.
var meetFlagKeys = []string{
	"ofmeet_recording",
	"ofmeet_tags",
	"ofmeet_cryptpad",
	"ofmeet_captions",
	"ofmeet_transcription",
	"ofmeet_uploads",
	"ofmeet_breakout",
}

// merge appends every applicable server bookmark to the user's storage
// element. A store failure degrades to merging nothing: the response still
// goes out with the client's own content.
func (i *Interceptor) merge(ctx context.Context, to xmpp.JID, storage *etree.Element) {
	bookmarks, err := i.bookmarks.Bookmarks(ctx)
	if err != nil {
		i.logger.Error("failed to list bookmarks",
			logger.String("user", to.Node),
			logger.Error(err))
		return
	}

	for _, bm := range bookmarks {
		if i.applies(ctx, to, bm) {
			i.addBookmarkElement(ctx, to, bm, storage)
		}
	}
}

// addBookmarkElement appends one bookmark to the storage element, reusing a
// matching client-authored entry instead of duplicating it. The shared
// marker is appended on both paths so echoed entries are annotated too.
func (i *Interceptor) addBookmarkElement(ctx context.Context, to xmpp.JID, bm *domain.Bookmark, storage *etree.Element) {
	// The account may have been deleted while the response was in flight.
	if !i.resolver.AccountExists(ctx, to.Node) {
		return
	}

	switch bm.Type {
	case domain.TypeURL:
		el := findByAttr(storage, "url", "url", bm.Value)
		if el == nil {
			el = storage.CreateElement("url")
			el.CreateAttr("name", bm.Name)
			el.CreateAttr("url", bm.Value)
			for _, key := range urlFlagKeys {
				if bm.BoolProperty(key) {
					el.CreateAttr(key, "true")
				}
			}
		}
		appendSharedMarker(el)
		i.stats.merged.Add(1)

	case domain.TypeConference:
		el := findByAttr(storage, "conference", "jid", bm.Value)
		if el == nil {
			el = storage.CreateElement("conference")
			el.CreateAttr("name", bm.Name)
			el.CreateAttr("autojoin", strconv.FormatBool(bm.BoolProperty("autojoin")))
			el.CreateAttr("jid", bm.Value)
			if bm.BoolProperty("nameasnick") {
				if name, err := i.resolver.DisplayName(ctx, to.Node); err != nil {
					i.logger.Error("failed to resolve display name for nick",
						logger.String("user", to.Node),
						logger.Error(err))
				} else {
					el.CreateElement("nick").SetText(name)
				}
			}
			if bm.HasProperty("avatar_uri") {
				el.CreateAttr("avatar_uri", bm.Property("avatar_uri"))
			}
			for _, key := range meetFlagKeys {
				if bm.BoolProperty(key) {
					el.CreateAttr(key, "true")
				}
			}
		}
		appendSharedMarker(el)
		i.stats.merged.Add(1)
	}
}

// findByAttr returns the first child of the given tag whose attribute
// matches value case-insensitively, or nil. Children without the attribute
// never match.
func findByAttr(parent *etree.Element, tag, attr, value string) *etree.Element {
	for _, el := range parent.SelectElements(tag) {
		got := el.SelectAttrValue(attr, "")
		if got != "" && value != "" && strings.EqualFold(got, value) {
			return el
		}
	}
	return nil
}

// appendSharedMarker tags a bookmark entry as server-managed.
func appendSharedMarker(el *etree.Element) {
	el.CreateElement("shared_bookmark").CreateAttr("xmlns", xmpp.NSSharedBookmark)
}
