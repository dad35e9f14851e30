// Package cache holds fetched source documents for the duration of their
// TTL. Verification reports themselves are never cached: claims and
// outcomes live only for one request.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the source-document cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "factcheck:v1:" + hex.EncodeToString(hash[:])
}
