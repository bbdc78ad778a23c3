// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// EncryptedTitle replaces the real title of every sealed entry on the wire.
const EncryptedTitle = "[encrypted]"

// EntrySaltLength is the size of the random value stored with each sealed entry.
const EntrySaltLength = 32

// Envelope is either a [SealedEnvelope] or a [PublicEnvelope].
// The unexported marker keeps the set closed.
type Envelope interface {
	isEnvelope()
}

// SealedEnvelope is an entry encrypted under the holder's key.
type SealedEnvelope struct {
	// Ciphertext is the GCM output with the tag appended.
	Ciphertext []byte
	Nonce      []byte
	// EntrySalt is stored with the entry but never fed into derivation.
	EntrySalt []byte
}

// PublicEnvelope is an entry the holder chose to store in plaintext.
type PublicEnvelope struct {
	Title string
	Body  string
}

func (SealedEnvelope) isEnvelope() {}
func (PublicEnvelope) isEnvelope() {}

// entryPayload is the plaintext sealed under one nonce and one tag.
type entryPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// envelopeCodec implements [EnvelopeSealer].
type envelopeCodec struct {
	cipher AuthenticatedCipher
	random SecureRandom
}

// NewEnvelopeCodec returns an [EnvelopeSealer] drawing nonces and entry
// salts from random.
func NewEnvelopeCodec(cipher AuthenticatedCipher, random SecureRandom) EnvelopeSealer {
	return &envelopeCodec{cipher: cipher, random: random}
}

// Seal implements [EnvelopeSealer]. Every call draws a fresh nonce.
func (c *envelopeCodec) Seal(title, body string, key DerivedKey) (SealedEnvelope, error) {
	plaintext, err := json.Marshal(entryPayload{Title: title, Content: body})
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("marshal entry payload: %w", err)
	}

	nonce, err := randomBytes(c.random, NonceSize)
	if err != nil {
		return SealedEnvelope{}, err
	}
	entrySalt, err := randomBytes(c.random, EntrySaltLength)
	if err != nil {
		return SealedEnvelope{}, err
	}

	ciphertext, err := c.cipher.Encrypt(key, nonce, plaintext)
	if err != nil {
		return SealedEnvelope{}, err
	}

	return SealedEnvelope{Ciphertext: ciphertext, Nonce: nonce, EntrySalt: entrySalt}, nil
}

// Open implements [EnvelopeSealer].
func (c *envelopeCodec) Open(envelope SealedEnvelope, key DerivedKey) (string, string, error) {
	plaintext, err := c.cipher.Decrypt(key, envelope.Nonce, envelope.Ciphertext)
	if err != nil {
		return "", "", err
	}

	var payload entryPayload
	if err = json.Unmarshal(plaintext, &payload); err != nil {
		return "", "", ErrAuthenticationFailure
	}

	return payload.Title, payload.Content, nil
}

// Encode converts an envelope to its wire and storage form.
func Encode(envelope Envelope) models.EnvelopeFields {
	switch e := envelope.(type) {
	case SealedEnvelope:
		return models.EnvelopeFields{
			IsEncrypted: true,
			Title:       EncryptedTitle,
			Ciphertext:  base64.StdEncoding.EncodeToString(e.Ciphertext),
			Nonce:       base64.StdEncoding.EncodeToString(e.Nonce),
			EntrySalt:   base64.StdEncoding.EncodeToString(e.EntrySalt),
		}
	case PublicEnvelope:
		return models.EnvelopeFields{
			Title: e.Title,
			Body:  e.Body,
		}
	default:
		return models.EnvelopeFields{}
	}
}

// Decode validates fields and returns the matching [Envelope].
func Decode(fields models.EnvelopeFields) (Envelope, error) {
	if !fields.IsEncrypted {
		if fields.Ciphertext != "" || fields.Nonce != "" || fields.EntrySalt != "" {
			return nil, fmt.Errorf("%w: public entry carries encryption fields", ErrMalformedInput)
		}
		return PublicEnvelope{Title: fields.Title, Body: fields.Body}, nil
	}

	if fields.Title != EncryptedTitle {
		return nil, fmt.Errorf("%w: encrypted entry exposes a title", ErrMalformedInput)
	}
	if fields.Body != "" {
		return nil, fmt.Errorf("%w: encrypted entry exposes a body", ErrMalformedInput)
	}

	ciphertext, err := decodeField("ciphertext", fields.Ciphertext)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than tag", ErrMalformedInput)
	}

	nonce, err := decodeField("nonce", fields.Nonce)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce length %d", ErrMalformedInput, len(nonce))
	}

	entrySalt, err := decodeField("entry_salt", fields.EntrySalt)
	if err != nil {
		return nil, err
	}

	return SealedEnvelope{Ciphertext: ciphertext, Nonce: nonce, EntrySalt: entrySalt}, nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s is missing", ErrMalformedInput, name)
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not base64", ErrMalformedInput, name)
	}
	return b, nil
}
