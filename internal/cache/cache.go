package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for run-scoped caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a source id.
func Key(sourceID string) string {
	hash := sha256.Sum256([]byte(sourceID))
	return "citeguard:v1:" + hex.EncodeToString(hash[:])
}
