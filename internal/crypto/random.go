package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// SystemRandom returns the operating system CSPRNG.
func SystemRandom() SecureRandom {
	return rand.Reader
}

// randomBytes reads exactly n bytes from random.
func randomBytes(random SecureRandom, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(random, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
