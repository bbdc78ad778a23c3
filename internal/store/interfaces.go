package store

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// UserRepository persists accounts on the server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// SetEncryptionSalt stores salt only if the account has none yet and
	// returns the salt that is on file afterwards.
	SetEncryptionSalt(ctx context.Context, userID int64, salt string) (string, error)
	// EnrollDiaryToken stores tokenHash only if the account has none yet.
	EnrollDiaryToken(ctx context.Context, userID int64, tokenHash string) error
	UpdateUsername(ctx context.Context, userID int64, username string) error
}

// DiaryRepository persists diary envelopes on the server. Every method is
// scoped to the owner; rows of other users behave as missing.
type DiaryRepository interface {
	ListEntries(ctx context.Context, userID int64) ([]models.DiaryEntry, error)
	GetEntry(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error)
	CreateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	UpdateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error

	// ListPublicEntries returns at most limit public entries, newest first.
	ListPublicEntries(ctx context.Context, userID int64, limit, offset uint64) ([]models.PublicEntry, error)
	GetPublicEntry(ctx context.Context, userID, entryID int64) (models.PublicEntry, error)
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}
