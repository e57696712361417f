package intercept

import (
	"context"
	"errors"
	"testing"

	"github.com/sharemark/sharemark/internal/domain"
	"github.com/sharemark/sharemark/internal/logger"
	"github.com/sharemark/sharemark/internal/xmpp"
)

func avatarBookmark(value, uri string) *domain.Bookmark {
	bm := &domain.Bookmark{
		Type:   domain.TypeConference,
		Name:   "All hands",
		Value:  value,
		Global: true,
	}
	if uri != "" {
		bm.Properties = map[string]string{"avatar_uri": uri}
	}
	return bm
}

func vcardGet(to string) *xmpp.IQ {
	iq := xmpp.NewIQ(xmpp.GetType, "v7", "vCard", xmpp.NSVCard)
	toJID := xmpp.ParseJID(to)
	fromJID := xmpp.ParseJID("alice@example.com/desktop")
	iq.To = &toJID
	iq.From = &fromJID
	return iq
}

func TestAvatarReplyShape(t *testing.T) {
	sink := &fakeSink{}
	engine := New(&fakeStore{list: []*domain.Bookmark{
		avatarBookmark("allhands@conference.example.com", "data:image/png;base64,QUJD"),
	}}, singleUserResolver("alice", "Alice"), sink, logger.Nop())

	req := vcardGet("allhands@conference.example.com")
	res := engine.respondAvatar(context.Background(), "allhands@conference.example.com", req)

	if !res.Handled {
		t.Fatal("expected the original packet to be suppressed")
	}
	if res.Reply == nil {
		t.Fatal("expected a synthesized reply")
	}

	reply := res.Reply
	if reply.Type != xmpp.ResultType || reply.ID != "v7" {
		t.Errorf("reply must correlate to the request, got type=%q id=%q", reply.Type, reply.ID)
	}
	if reply.To == nil || reply.To.String() != "alice@example.com/desktop" {
		t.Errorf("reply must go back to the requester, To = %v", reply.To)
	}

	card := reply.Payload
	if card == nil || card.Tag != "vCard" || reply.PayloadNamespace() != xmpp.NSVCard {
		t.Fatalf("reply payload must be a vcard-temp vCard, got %v", card)
	}
	if got := card.SelectElement("FN").Text(); got != "All hands" {
		t.Errorf("FN = %q, want bookmark name", got)
	}
	if got := card.SelectElement("NICKNAME").Text(); got != "All hands" {
		t.Errorf("NICKNAME = %q, want bookmark name", got)
	}
	photo := card.SelectElement("PHOTO")
	if photo == nil {
		t.Fatal("expected a PHOTO child")
	}
	if got := photo.SelectElement("TYPE").Text(); got != "image/png" {
		t.Errorf("TYPE = %q, want image/png", got)
	}
	if got := photo.SelectElement("BINVAL").Text(); got != "QUJD" {
		t.Errorf("BINVAL = %q, want QUJD", got)
	}

	if len(sink.delivered) != 1 || sink.delivered[0] != reply {
		t.Error("the reply must also be handed to the routing sink")
	}
}

func TestAvatarKeyMatchIsCaseInsensitive(t *testing.T) {
	engine := New(&fakeStore{list: []*domain.Bookmark{
		avatarBookmark("allhands@conference.example.com", "data:image/png;base64,QUJD"),
	}}, singleUserResolver("alice", "Alice"), nil, logger.Nop())

	req := vcardGet("AllHands@Conference.Example.com")
	res := engine.respondAvatar(context.Background(), "AllHands@Conference.Example.com", req)

	if !res.Handled {
		t.Error("key lookup must match the bookmark value case-insensitively")
	}
}

func TestAvatarNoBookmarkPassesThrough(t *testing.T) {
	sink := &fakeSink{}
	engine := New(&fakeStore{}, singleUserResolver("alice", "Alice"), sink, logger.Nop())

	req := vcardGet("unknown@conference.example.com")
	res := engine.respondAvatar(context.Background(), "unknown@conference.example.com", req)

	if res.Handled || res.Reply != nil {
		t.Error("a correlation miss is a normal pass-through")
	}
	if len(sink.delivered) != 0 {
		t.Error("nothing should be delivered on a miss")
	}
}

func TestAvatarBookmarkWithoutAvatarPassesThrough(t *testing.T) {
	engine := New(&fakeStore{list: []*domain.Bookmark{
		avatarBookmark("allhands@conference.example.com", ""),
	}}, singleUserResolver("alice", "Alice"), nil, logger.Nop())

	req := vcardGet("allhands@conference.example.com")
	res := engine.respondAvatar(context.Background(), "allhands@conference.example.com", req)

	if res.Handled || res.Reply != nil {
		t.Error("a bookmark without avatar_uri must not affect delivery")
	}
}

func TestAvatarErrorPathSuppressesWithoutReply(t *testing.T) {
	sink := &fakeSink{}
	engine := New(&fakeStore{list: []*domain.Bookmark{
		avatarBookmark("allhands@conference.example.com", "data:image/png;base64,QUJD"),
	}}, singleUserResolver("alice", "Alice"), sink, logger.Nop())

	iq := xmpp.NewIQ(xmpp.ErrorType, "v9", "vCard", xmpp.NSVCard)
	from := xmpp.ParseJID("allhands@conference.example.com")
	iq.From = &from

	res := engine.respondAvatar(context.Background(), "allhands@conference.example.com", iq)

	if !res.Handled {
		t.Error("the error path must still suppress the original packet")
	}
	if res.Reply != nil || len(sink.delivered) != 0 {
		t.Error("only get requests synthesize a reply")
	}
}

func TestAvatarMalformedURISuppressesWithoutReply(t *testing.T) {
	sink := &fakeSink{}
	engine := New(&fakeStore{list: []*domain.Bookmark{
		avatarBookmark("allhands@conference.example.com", "not-a-data-uri"),
	}}, singleUserResolver("alice", "Alice"), sink, logger.Nop())

	req := vcardGet("allhands@conference.example.com")
	res := engine.respondAvatar(context.Background(), "allhands@conference.example.com", req)

	if !res.Handled {
		t.Error("a present avatar_uri suppresses even when malformed")
	}
	if res.Reply != nil || len(sink.delivered) != 0 {
		t.Error("malformed avatar_uri must fail closed without a reply")
	}
}

func TestAvatarStoreErrorPassesThrough(t *testing.T) {
	engine := New(&fakeStore{getErr: errors.New("store down")},
		singleUserResolver("alice", "Alice"), nil, logger.Nop())

	req := vcardGet("allhands@conference.example.com")
	res := engine.respondAvatar(context.Background(), "allhands@conference.example.com", req)

	if res.Handled {
		t.Error("a store failure must not block delivery")
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		mime        string
		payload     string
		expectError bool
	}{
		{
			name:    "png",
			uri:     "data:image/png;base64,QUJD",
			mime:    "image/png",
			payload: "QUJD",
		},
		{
			name:    "jpeg with long payload",
			uri:     "data:image/jpeg;base64,/9j/4AAQ",
			mime:    "image/jpeg",
			payload: "/9j/4AAQ",
		},
		{
			name:        "missing marker",
			uri:         "data:image/png,QUJD",
			expectError: true,
		},
		{
			name:        "no scheme",
			uri:         ";base64,QUJD",
			expectError: true,
		},
		{
			name:        "empty",
			uri:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, payload, err := parseDataURI(tt.uri)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mime != tt.mime {
				t.Errorf("mime = %q, want %q", mime, tt.mime)
			}
			if payload != tt.payload {
				t.Errorf("payload = %q, want %q", payload, tt.payload)
			}
		})
	}
}
