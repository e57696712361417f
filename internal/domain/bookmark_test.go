package domain

import "testing"

func TestBoolProperty(t *testing.T) {
	tests := []struct {
		name     string
		props    map[string]string
		key      string
		expected bool
	}{
		{
			name:     "literal true",
			props:    map[string]string{"rss": "true"},
			key:      "rss",
			expected: true,
		},
		{
			name:     "capitalized is not truthy",
			props:    map[string]string{"rss": "True"},
			key:      "rss",
			expected: false,
		},
		{
			name:     "uppercase is not truthy",
			props:    map[string]string{"rss": "TRUE"},
			key:      "rss",
			expected: false,
		},
		{
			name:     "false",
			props:    map[string]string{"rss": "false"},
			key:      "rss",
			expected: false,
		},
		{
			name:     "numeric one is not truthy",
			props:    map[string]string{"rss": "1"},
			key:      "rss",
			expected: false,
		},
		{
			name:     "absent",
			props:    map[string]string{},
			key:      "rss",
			expected: false,
		},
		{
			name:     "nil properties",
			props:    nil,
			key:      "rss",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bookmark{Properties: tt.props}
			if got := b.BoolProperty(tt.key); got != tt.expected {
				t.Errorf("BoolProperty(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestHasProperty(t *testing.T) {
	b := &Bookmark{Properties: map[string]string{"avatar_uri": ""}}

	if !b.HasProperty("avatar_uri") {
		t.Error("HasProperty should report a key set to the empty string")
	}
	if b.HasProperty("rss") {
		t.Error("HasProperty should not report an absent key")
	}
}

func TestHasUser(t *testing.T) {
	b := &Bookmark{Users: []string{"alice", "bob"}}

	if !b.HasUser("alice") {
		t.Error("expected alice to be listed")
	}
	if b.HasUser("mallory") {
		t.Error("did not expect mallory to be listed")
	}
	if b.HasUser("Alice") {
		t.Error("user list matching is exact, not case-insensitive")
	}
}

func TestKey(t *testing.T) {
	b := &Bookmark{Type: TypeConference, Value: "Room@Conference.Example.COM"}

	if got := b.Key(); got != "room@conference.example.com" {
		t.Errorf("Key() = %q, want lowercased value", got)
	}
}
