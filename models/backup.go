package models

import "time"

// BackupArchiveVersion is the current backup archive layout.
const BackupArchiveVersion = 1

// BackupArchive is the CBOR document written by the client backup command.
// Private entries stay sealed; the archive holds no key material.
type BackupArchive struct {
	Version   int              `cbor:"version"`
	UserID    int64            `cbor:"user_id"`
	CreatedAt time.Time        `cbor:"created_at"`
	Entries   []BackupEnvelope `cbor:"entries"`
}

// BackupEnvelope is one entry inside a [BackupArchive].
type BackupEnvelope struct {
	ID          int64     `cbor:"id"`
	IsEncrypted bool      `cbor:"is_encrypted"`
	Title       string    `cbor:"title"`
	Body        string    `cbor:"body,omitempty"`
	Ciphertext  []byte    `cbor:"ciphertext,omitempty"`
	Nonce       []byte    `cbor:"nonce,omitempty"`
	EntrySalt   []byte    `cbor:"entry_salt,omitempty"`
	CreatedAt   time.Time `cbor:"created_at"`
	UpdatedAt   time.Time `cbor:"updated_at"`
}
