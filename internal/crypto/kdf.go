// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation constants. Changing any of them changes every derived key,
// so a change must come with a new KDFVersion.
const (
	KDFVersion       = 1
	PBKDF2Iterations = 100_000
	KeyLength        = 32 // AES-256
	SaltLength       = 32
	MinSaltLength    = 16
	maxSaltLength    = 1024
)

// pbkdf2Deriver is the PBKDF2-HMAC-SHA256 implementation of [KeyDeriver].
type pbkdf2Deriver struct {
	iterations int
	keyLength  int
}

// DeriverOpt tunes a deriver built by [NewKeyDeriver].
type DeriverOpt func(*pbkdf2Deriver)

// WithIterations overrides the iteration count. Only tests should use it;
// keys derived with a different count do not open existing entries.
func WithIterations(iterations int) DeriverOpt {
	return func(d *pbkdf2Deriver) {
		if iterations > 0 {
			d.iterations = iterations
		}
	}
}

// NewKeyDeriver returns the versioned PBKDF2-SHA256 deriver:
//   - iterations: 100 000
//   - key length: 32 bytes (256 bits)
func NewKeyDeriver(opts ...DeriverOpt) KeyDeriver {
	d := &pbkdf2Deriver{
		iterations: PBKDF2Iterations,
		keyLength:  KeyLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeriveKey implements [KeyDeriver].
func (d *pbkdf2Deriver) DeriveKey(secret Secret, salt []byte) (DerivedKey, error) {
	if len(salt) < MinSaltLength || len(salt) > maxSaltLength {
		return nil, fmt.Errorf("%w: salt length %d", ErrMalformedInput, len(salt))
	}

	return pbkdf2.Key([]byte(secret), salt, d.iterations, d.keyLength, sha256.New), nil
}

// GenerateSalt draws a fresh [SaltLength] salt for a new account.
func GenerateSalt(random SecureRandom) ([]byte, error) {
	return randomBytes(random, SaltLength)
}
