package intercept

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/store"
	"github.com/sharemark/sharemark/internal/xmpp"
)

const base64Marker = ";base64,"

// respondAvatar handles the vCard flow. When the correlation key resolves
// to a bookmark carrying an avatar_uri, the original stanza is suppressed;
// for get requests a vCard result is synthesized from the data URI and
// handed to the sink. A miss or an avatar-less bookmark passes through.
func (i *Interceptor) respondAvatar(ctx context.Context, key string, iq *xmpp.IQ) xmpp.Result {
	bm, err := i.bookmarks.Bookmark(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			i.logger.Warn("bookmark lookup failed",
				logger.String("key", key),
				logger.Error(err))
		}
		return xmpp.Result{}
	}

	if !bm.HasProperty("avatar_uri") {
		return xmpp.Result{}
	}

	var reply *xmpp.IQ
	if iq.Type == xmpp.GetType {
		mime, payload, err := parseDataURI(bm.Property("avatar_uri"))
		if err != nil {
			// Fail closed: no reply, but the original stanza is still
			// suppressed below so the masked identity's real vCard
			// never leaks.
			i.logger.Warn("malformed avatar_uri",
				logger.String("key", key),
				logger.Error(err))
		} else {
			reply = xmpp.ResultIQ(iq)
			card := reply.SetPayload("vCard", xmpp.NSVCard)
			card.CreateElement("FN").SetText(bm.Name)
			card.CreateElement("NICKNAME").SetText(bm.Name)
			photo := card.CreateElement("PHOTO")
			photo.CreateElement("TYPE").SetText(mime)
			photo.CreateElement("BINVAL").SetText(payload)

			if i.sink != nil {
				i.sink.Deliver(reply)
			}
			i.stats.replies.Add(1)
		}
	}

	i.stats.suppressed.Add(1)
	return xmpp.Result{Handled: true, Reply: reply}
}

// parseDataURI splits "data:<mime>;base64,<payload>" into its parts.
func parseDataURI(uri string) (mime, payload string, err error) {
	head, payload, found := strings.Cut(uri, base64Marker)
	if !found {
		return "", "", fmt.Errorf("missing %q marker", base64Marker)
	}
	mime, found = strings.CutPrefix(head, "data:")
	if !found {
		return "", "", fmt.Errorf("missing data: scheme prefix")
	}
	return mime, payload, nil
}
