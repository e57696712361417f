package xmpp

import (
	"context"
	"testing"
)

// stubObserver records invocations and optionally handles the stanza.
type stubObserver struct {
	handles   bool
	calls     int
	processed []bool
}

func (o *stubObserver) InterceptIQ(ctx context.Context, iq *IQ, incoming, processed bool) Result {
	o.calls++
	o.processed = append(o.processed, processed)
	if o.handles && !processed {
		return Result{Handled: true}
	}
	return Result{}
}

func TestObserverChainDispatchOrder(t *testing.T) {
	chain := NewObserverChain()
	first := &stubObserver{handles: true}
	second := &stubObserver{}
	chain.Register(first)
	chain.Register(second)

	iq := NewIQ(GetType, "v1", "vCard", NSVCard)
	res := chain.Dispatch(context.Background(), iq, true)

	if !res.Handled {
		t.Error("expected the chain to report the stanza as handled")
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = (%d, %d), want both observers invoked once", first.calls, second.calls)
	}
	if len(second.processed) != 1 || !second.processed[0] {
		t.Error("second observer should see processed=true after the first handled")
	}
}

func TestObserverChainUnregister(t *testing.T) {
	chain := NewObserverChain()
	obs := &stubObserver{}
	chain.Register(obs)
	chain.Unregister(obs)

	chain.Dispatch(context.Background(), NewIQ(GetType, "v1", "vCard", NSVCard), true)

	if obs.calls != 0 {
		t.Errorf("unregistered observer was invoked %d times", obs.calls)
	}
}

func TestObserverChainNoHandlers(t *testing.T) {
	chain := NewObserverChain()
	obs := &stubObserver{}
	chain.Register(obs)

	res := chain.Dispatch(context.Background(), NewIQ(GetType, "v1", "vCard", NSVCard), true)

	if res.Handled {
		t.Error("nothing handled the stanza, chain should report pass-through")
	}
}
