// Package intercept is the bookmark interception engine. It observes IQ
// stanzas inline on the host transport's processing path, merges
// server-defined bookmarks into private storage results, and answers vCard
// requests that correlate to a bookmark with an avatar.
package intercept

import (
	"context"

	"github.com/sharemark/sharemark/internal/identity"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/store"
	"github.com/sharemark/sharemark/internal/xmpp"
)

// Deliverer routes a synthesized stanza back out through the host
// transport. Fire-and-forget; the engine never consults an outcome.
type Deliverer interface {
	Deliver(iq *xmpp.IQ)
}

// Interceptor is the engine. It holds no mutable state beyond counters and
// is safe for concurrent use as long as its collaborators are.
type Interceptor struct {
	bookmarks store.Bookmarks
	resolver  identity.Resolver
	sink      Deliverer
	logger    logger.Logger
	stats     counters
}

// New creates an interceptor. sink may be nil when the caller routes
// replies itself from the returned Result.
func New(bookmarks store.Bookmarks, resolver identity.Resolver, sink Deliverer, log logger.Logger) *Interceptor {
	return &Interceptor{
		bookmarks: bookmarks,
		resolver:  resolver,
		sink:      sink,
		logger:    log,
	}
}

var _ xmpp.PacketObserver = (*Interceptor)(nil)

// Start registers the interceptor with the transport.
func (i *Interceptor) Start(r xmpp.Registrar) {
	r.Register(i)
}

// Stop removes the interceptor from the transport.
func (i *Interceptor) Stop(r xmpp.Registrar) {
	r.Unregister(i)
}

// InterceptIQ classifies one observed stanza and acts on the two shapes the
// engine cares about. Everything else passes through untouched.
func (i *Interceptor) InterceptIQ(ctx context.Context, iq *xmpp.IQ, incoming, processed bool) xmpp.Result {
	if processed || iq == nil || iq.Payload == nil {
		return xmpp.Result{}
	}
	i.stats.observed.Add(1)

	switch iq.PayloadNamespace() {
	case xmpp.NSPrivate:
		// A private storage result leaving the server may carry the
		// user's bookmark document; append server bookmarks to it.
		if iq.Type != xmpp.ResultType || incoming || iq.To == nil {
			return xmpp.Result{}
		}
		storage := iq.Payload.SelectElement("storage")
		if storage == nil {
			return xmpp.Result{}
		}
		if storage.SelectAttrValue("xmlns", "") == xmpp.NSBookmarkStorage {
			i.merge(ctx, *iq.To, storage)
		}

	case xmpp.NSVCard:
		if key := correlationKey(iq, incoming); key != "" {
			return i.respondAvatar(ctx, key, iq)
		}
	}

	return xmpp.Result{}
}

// correlationKey derives the bookmark lookup key for the vCard flow: the
// destination of an inbound get, or the source of an outbound error.
func correlationKey(iq *xmpp.IQ, incoming bool) string {
	switch {
	case iq.Type == xmpp.GetType && incoming && iq.To != nil:
		return iq.To.String()
	case iq.Type == xmpp.ErrorType && !incoming && iq.From != nil:
		return iq.From.String()
	}
	return ""
}
