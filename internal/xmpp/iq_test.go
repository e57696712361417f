package xmpp

import "testing"

func TestNewIQPayload(t *testing.T) {
	iq := NewIQ(GetType, "v1", "vCard", NSVCard)

	if iq.Payload == nil {
		t.Fatal("expected a payload element")
	}
	if iq.Payload.Tag != "vCard" {
		t.Errorf("payload tag = %q, want vCard", iq.Payload.Tag)
	}
	if got := iq.PayloadNamespace(); got != NSVCard {
		t.Errorf("PayloadNamespace() = %q, want %q", got, NSVCard)
	}
}

func TestPayloadNamespaceWithoutPayload(t *testing.T) {
	iq := &IQ{Type: GetType, ID: "v1"}
	if got := iq.PayloadNamespace(); got != "" {
		t.Errorf("PayloadNamespace() = %q, want empty", got)
	}
}

func TestResultIQ(t *testing.T) {
	from := ParseJID("alice@example.com/desktop")
	to := ParseJID("room@conference.example.com")
	req := NewIQ(GetType, "v42", "vCard", NSVCard)
	req.From = &from
	req.To = &to

	res := ResultIQ(req)

	if res.Type != ResultType {
		t.Errorf("Type = %q, want result", res.Type)
	}
	if res.ID != "v42" {
		t.Errorf("ID = %q, want v42", res.ID)
	}
	if res.To == nil || res.To.String() != from.String() {
		t.Errorf("To = %v, want request From %v", res.To, from)
	}
	if res.From == nil || res.From.String() != to.String() {
		t.Errorf("From = %v, want request To %v", res.From, to)
	}
	if res.Payload != nil {
		t.Error("result should start without a payload")
	}
}

func TestResultIQWithoutAddresses(t *testing.T) {
	req := NewIQ(GetType, "v1", "vCard", NSVCard)
	res := ResultIQ(req)

	if res.To != nil || res.From != nil {
		t.Error("result of an address-less request should carry no addresses")
	}
}
