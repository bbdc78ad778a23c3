package models

import "time"

// DiaryEventKind names a diary lifecycle event subject suffix.
type DiaryEventKind string

const (
	DiaryEntryCreated DiaryEventKind = "created"
	DiaryEntryUpdated DiaryEventKind = "updated"
	DiaryEntryDeleted DiaryEventKind = "deleted"
)

// DiaryEvent is published after a diary write succeeds. It carries
// identifiers only, never titles, bodies, ciphertext or tokens.
type DiaryEvent struct {
	Kind        DiaryEventKind `json:"-"`
	UserID      int64          `json:"user_id"`
	EntryID     int64          `json:"entry_id"`
	IsEncrypted bool           `json:"is_encrypted"`
	At          time.Time      `json:"at"`
}
