// Package cache provides short-lived caching of search results so that
// repeated verifications of the same claim do not re-bill the search API.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ClaimKey generates a cache key from a claim's normalized text
func ClaimKey(claim string) string {
	normalized := strings.ToLower(strings.TrimSpace(claim))
	hash := sha256.Sum256([]byte(normalized))
	return "verifai:v1:" + hex.EncodeToString(hash[:])
}
