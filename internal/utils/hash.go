package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 of a request or response body.
const HashHeader = "HashSHA256"

// hasherPool holds HMAC-SHA256 instances keyed with the body hash key.
// Must be initialized via InitHasherPool before Hash is used.
var hasherPool sync.Pool

// InitHasherPool configures the pool used by [Hash] with hashKey.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash returns the HMAC-SHA256 of data under the pooled key.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString returns the hex HMAC-SHA256 of data under hashKey without
// touching the pool. The client uses it to sign request bodies.
func HashString(data []byte, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
