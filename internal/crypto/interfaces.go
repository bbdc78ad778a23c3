// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the holder-side cryptography of the diary:
// password based key derivation, authenticated encryption of entry payloads,
// the entry envelope codec and the possession token scheme.
//
// The package knows nothing about the network, the database or sessions.
// Its only job is to turn secrets into keys and keys into ciphertext.
//
// Flow on the holder's device:
//
//	Key      = DeriveKey(secret, encryptionSalt)         PBKDF2-SHA256, 100k iterations
//	Envelope = Seal(title, body, Key)                    AES-256-GCM, fresh nonce per call
//	Token    = DeriveToken(secret, userID)               SHA-256 with a fixed label
//
// The server only ever sees encryption salts, envelopes and HashForStorage(Token).
package crypto

import "io"

// SecureRandom is the source of nonces, salts and entry salts.
// Production code uses [SystemRandom]; tests inject a deterministic reader.
type SecureRandom interface {
	io.Reader
}

// KeyDeriver turns a secret and a per-user salt into a fixed-length key.
// Implementations must be pure: the same inputs always give the same key.
type KeyDeriver interface {
	// DeriveKey returns a [KeyLength] key or [ErrMalformedInput] when salt
	// has an unusable length.
	DeriveKey(secret Secret, salt []byte) (DerivedKey, error)
}

// AuthenticatedCipher encrypts and decrypts opaque payloads under a derived key.
// The authentication tag is fused to the end of the ciphertext.
type AuthenticatedCipher interface {
	// Encrypt seals plaintext under key with the caller supplied nonce.
	Encrypt(key DerivedKey, nonce, plaintext []byte) ([]byte, error)

	// Decrypt opens ciphertext. Any wrong key, wrong nonce or tampered byte
	// results in [ErrAuthenticationFailure] and nothing else.
	Decrypt(key DerivedKey, nonce, ciphertext []byte) ([]byte, error)
}

// EnvelopeSealer combines title and body into one sealed envelope and back.
type EnvelopeSealer interface {
	Seal(title, body string, key DerivedKey) (SealedEnvelope, error)
	Open(envelope SealedEnvelope, key DerivedKey) (title, body string, err error)
}
