package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a deterministic cache key from a source URL. The URL is
// normalized first so that protocol, a leading "www." and a trailing
// slash do not produce distinct entries for the same site.
func Key(rawURL string) string {
	sum := sha256.Sum256([]byte(normalizeURL(rawURL)))
	return hex.EncodeToString(sum[:])
}

func normalizeURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
