package redisstore

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "sharemark:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmark correlation keys
	KeyAllBookmarks = "sharemark:bookmarks:all"
)

// BookmarkKey returns the Redis key for a bookmark by correlation key
func BookmarkKey(key string) string {
	return KeyPrefixBookmark + key
}

// AllBookmarksKey returns the Redis key for the set of all bookmarks
func AllBookmarksKey() string {
	return KeyAllBookmarks
}
