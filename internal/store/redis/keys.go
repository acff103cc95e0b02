package redis

const (
	// KeyPrefix namespaces every key written by the playlist service.
	KeyPrefix = "playlist:"
	// DefaultDocumentKey holds the JSON-encoded collection.
	DefaultDocumentKey = KeyPrefix + "videos"
)

// DocumentKey returns key, or the default document key when key is empty.
func DocumentKey(key string) string {
	if key == "" {
		return DefaultDocumentKey
	}
	return key
}
