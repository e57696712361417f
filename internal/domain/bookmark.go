package domain

import "strings"

// Type discriminates the two bookmark variants.
type Type string

const (
	// TypeURL is a web link bookmark.
	TypeURL Type = "url"
	// TypeConference is a group-chat room bookmark.
	TypeConference Type = "conference"
)

// Bookmark represents a server-managed favorite that can be injected into a
// user's private bookmark storage.
type Bookmark struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Type selects the variant and determines which property keys
	// and output attributes are meaningful.
	Type Type

	// Name is the display label shown to clients.
	Name string

	// Value is the target: the URL for TypeURL bookmarks, the room JID
	// for TypeConference bookmarks.
	Value string

	// ─────────────────────────────
	// Scoping
	// ─────────────────────────────

	// Global makes the bookmark apply to every account,
	// regardless of Users and Groups.
	Global bool

	// Users lists account names the bookmark applies to.
	Users []string

	// Groups lists group names whose members the bookmark applies to.
	// Union semantics with Users.
	Groups []string

	// ─────────────────────────────
	// Extensions
	// ─────────────────────────────

	// Properties is an open string mapping carrying optional extensions
	// (avatar_uri, rss, autojoin, nameasnick, ofmeet_* flags, ...).
	// Unrecognized keys are ignored, never rejected.
	Properties map[string]string
}

// Property returns the raw property value, or "" when absent.
func (b *Bookmark) Property(key string) string {
	return b.Properties[key]
}

// HasProperty reports whether the property key is set, regardless of value.
func (b *Bookmark) HasProperty(key string) bool {
	_, ok := b.Properties[key]
	return ok
}

// BoolProperty reports whether the property holds the literal string "true".
// The match is case-sensitive; any other value, including absence, is false.
func (b *Bookmark) BoolProperty(key string) bool {
	return b.Properties[key] == "true"
}

// HasUser reports whether the account name is in the bookmark's user list.
func (b *Bookmark) HasUser(username string) bool {
	for _, u := range b.Users {
		if u == username {
			return true
		}
	}
	return false
}

// Key returns the correlation key bookmarks are looked up by: the
// lowercased value. Dedup against client documents is case-insensitive on
// the same value, so lookups share the normalization.
func (b *Bookmark) Key() string {
	return NormalizeKey(b.Value)
}

// NormalizeKey lowercases a correlation key.
func NormalizeKey(key string) string {
	return strings.ToLower(key)
}
