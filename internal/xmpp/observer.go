package xmpp

import (
	"context"
	"sync"
)

// Result is what an observer reports back to the transport after seeing a
// packet. Handled means the original packet must not be delivered further;
// Reply, when non-nil, is the stanza synthesized in its place. Branching on
// this value replaces the thrown rejection signal used by classic
// interceptor chains.
type Result struct {
	Handled bool
	Reply   *IQ
}

// PacketObserver observes IQ stanzas inline on the transport's processing
// path. incoming is true for client-to-server stanzas; processed is true
// when an earlier observer already handled delivery. Implementations must
// be safe for concurrent use: the transport may invoke them from multiple
// session threads at once.
type PacketObserver interface {
	InterceptIQ(ctx context.Context, iq *IQ, incoming, processed bool) Result
}

// Registrar is the transport's observer registration point.
type Registrar interface {
	Register(PacketObserver)
	Unregister(PacketObserver)
}

// ObserverChain is a minimal Registrar a host transport can drive: it
// dispatches each stanza to registered observers in order and stops at the
// first one that handles it.
type ObserverChain struct {
	mu        sync.RWMutex
	observers []PacketObserver
}

// NewObserverChain returns an empty chain.
func NewObserverChain() *ObserverChain {
	return &ObserverChain{}
}

// Register appends an observer to the chain.
func (c *ObserverChain) Register(o PacketObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Unregister removes an observer from the chain.
func (c *ObserverChain) Unregister(o PacketObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.observers {
		if cur == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// Dispatch runs the chain over one stanza. Observers after the first
// handling one see processed=true, mirroring how transports flag stanzas
// that were already answered.
func (c *ObserverChain) Dispatch(ctx context.Context, iq *IQ, incoming bool) Result {
	c.mu.RLock()
	observers := make([]PacketObserver, len(c.observers))
	copy(observers, c.observers)
	c.mu.RUnlock()

	var out Result
	for _, o := range observers {
		res := o.InterceptIQ(ctx, iq, incoming, out.Handled)
		if res.Handled && !out.Handled {
			out = res
		}
	}
	return out
}
