package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
)

// DiaryTokenHeader carries the possession token on privileged requests.
const DiaryTokenHeader = "X-DIARY-TOKEN"

const diaryTokenLabel = "DIARY_TOKEN::"

// DeriveToken computes hex(SHA-256("DIARY_TOKEN::" + secret + "::" + userID)).
// It shares no input with [KeyDeriver.DeriveKey] except the secret itself.
func DeriveToken(secret Secret, userID string) PossessionToken {
	sum := sha256.Sum256([]byte(diaryTokenLabel + string(secret) + "::" + userID))
	return PossessionToken(hex.EncodeToString(sum[:]))
}

// TokenHasher turns presented possession tokens into their stored form.
type TokenHasher struct {
	pepper []byte
}

// NewTokenHasher returns a hasher keyed with pepper. An empty pepper
// degrades to plain SHA-256.
func NewTokenHasher(pepper string) *TokenHasher {
	return &TokenHasher{pepper: []byte(pepper)}
}

// HashForStorage returns the hex digest persisted next to the account.
func (h *TokenHasher) HashForStorage(token string) string {
	var mac hash.Hash
	if len(h.pepper) == 0 {
		mac = sha256.New()
	} else {
		mac = hmac.New(sha256.New, h.pepper)
	}
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether presented hashes to storedHash. The comparison
// runs in constant time.
func (h *TokenHasher) Verify(presented, storedHash string) bool {
	if presented == "" || storedHash == "" {
		return false
	}
	computed := h.HashForStorage(presented)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
