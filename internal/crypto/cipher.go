// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AES-GCM parameters.
const (
	NonceSize = 12
	TagSize   = 16
)

// aesGCM is the AES-256-GCM implementation of [AuthenticatedCipher].
type aesGCM struct{}

// NewCipher returns the AES-256-GCM cipher.
func NewCipher() AuthenticatedCipher {
	return aesGCM{}
}

// Encrypt implements [AuthenticatedCipher]. The returned slice is
// ciphertext followed by the 16-byte tag.
func (aesGCM) Encrypt(key DerivedKey, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt implements [AuthenticatedCipher]. The GCM error is dropped on
// purpose: callers only ever see [ErrAuthenticationFailure].
func (aesGCM) Decrypt(key DerivedKey, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthenticationFailure
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}

	return plaintext, nil
}

func newGCM(key DerivedKey, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("%w: key length %d", ErrMalformedInput, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce length %d", ErrMalformedInput, len(nonce))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
