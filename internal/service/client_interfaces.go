package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// SecretPrompt asks the holder for the diary secret. It is called only when
// no remembered key can be restored.
type SecretPrompt func(ctx context.Context) (crypto.Secret, error)

// ClientAuthService manages the signed-in session on the device.
type ClientAuthService interface {
	// Register creates an account and signs in with it.
	Register(ctx context.Context, req models.RegisterRequest) (models.ClientSession, error)

	// Login signs in and keeps the session on the device.
	Login(ctx context.Context, req models.LoginRequest) (models.ClientSession, error)

	// Session loads the stored session and hands its bearer token to the
	// server adapter. Returns [ErrNotSignedIn] when there is none.
	Session(ctx context.Context) (models.ClientSession, error)

	// Logout wipes the remembered key of the session user and the session.
	Logout(ctx context.Context) error
}

// DiaryView is one entry as shown to the holder.
type DiaryView struct {
	ID          int64
	Title       string
	Body        string
	IsEncrypted bool
	// Readable is false when the entry could not be opened with the held key.
	Readable  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientDiaryService seals, opens and moves diary entries. Every method
// except Lock requires a signed-in session.
type ClientDiaryService interface {
	// Unlock derives the key from secret. The first unlock of an account
	// enrolls its possession token; later ones are checked by the server.
	// With remember the key is kept on the device for later commands.
	Unlock(ctx context.Context, secret crypto.Secret, remember bool) error

	// EnsureUnlocked restores a remembered key or falls back to prompt.
	EnsureUnlocked(ctx context.Context, prompt SecretPrompt) error

	// Lock wipes the key from memory and from the device.
	Lock(ctx context.Context) error

	List(ctx context.Context) ([]DiaryView, error)
	Show(ctx context.Context, entryID int64) (DiaryView, error)
	Write(ctx context.Context, title, body string, public bool) (DiaryView, error)
	Edit(ctx context.Context, entryID int64, title, body string, public bool) (DiaryView, error)
	Delete(ctx context.Context, entryID int64) error
}

// ClientProfileService manages the public profile.
type ClientProfileService interface {
	SetUsername(ctx context.Context, username string) error
	PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error)
	PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error)
}

// ClientBackupService exports the diary as a CBOR archive. Private entries
// stay sealed, so the archive is useless without the secret.
type ClientBackupService interface {
	Export(ctx context.Context, w io.Writer) (models.BackupArchive, error)
	Upload(ctx context.Context, uploader adapter.ArchiveUploader) (string, error)
	// ReadArchive decodes an archive written by Export.
	ReadArchive(r io.Reader) (models.BackupArchive, error)
}
