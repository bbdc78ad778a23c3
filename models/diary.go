// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EnvelopeFields is the wire and storage form of one diary entry payload.
//
// Exactly one of two shapes is valid:
//   - encrypted: IsEncrypted is true, Title is the "[encrypted]" sentinel,
//     Ciphertext, Nonce and EntrySalt are base64 strings, Body is empty;
//   - public: IsEncrypted is false, Title and Body are plaintext,
//     Ciphertext, Nonce and EntrySalt are empty.
//
// The shape is enforced by crypto.Decode, never by callers.
type EnvelopeFields struct {
	// IsEncrypted marks the entry as sealed under the holder's key.
	IsEncrypted bool `json:"is_encrypted"`

	// Title is plaintext for public entries and a sentinel otherwise.
	Title string `json:"title"`

	// Body is the plaintext body of a public entry.
	Body string `json:"body,omitempty"`

	// Ciphertext is base64(AES-GCM ciphertext || tag) of a sealed entry.
	Ciphertext string `json:"ciphertext,omitempty"`

	// Nonce is the base64 12-byte GCM nonce of a sealed entry.
	Nonce string `json:"nonce,omitempty"`

	// EntrySalt is a base64 32-byte random value stored with a sealed entry.
	EntrySalt string `json:"entry_salt,omitempty"`
}

// DiaryEntry is one stored diary row.
type DiaryEntry struct {
	// ID is the server-side identifier of the entry.
	ID int64 `json:"id"`

	// UserID is the owner. It is never sent over the wire; ownership
	// always comes from the authenticated session.
	UserID int64 `json:"-"`

	EnvelopeFields

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the DiaryEntry model.
func (d DiaryEntry) TableName() string {
	return "diaries"
}

// DiaryEntryList is the response body of the diary list endpoint.
type DiaryEntryList struct {
	Entries []DiaryEntry `json:"entries"`
	Length  int          `json:"length"`
}
