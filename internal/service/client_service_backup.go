package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// clientBackupService copies envelopes as the server holds them. Nothing is
// decrypted; the held key only provides the possession token.
type clientBackupService struct {
	auth    ClientAuthService
	adapter adapter.ServerAdapter
	keys    *keylifecycle.Manager
	encMode cbor.EncMode
	now     func() time.Time
	logger  *logger.Logger
}

func NewClientBackupService(
	auth ClientAuthService,
	serverAdapter adapter.ServerAdapter,
	keys *keylifecycle.Manager,
	logger *logger.Logger,
) (ClientBackupService, error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}

	return &clientBackupService{
		auth:    auth,
		adapter: serverAdapter,
		keys:    keys,
		encMode: encMode,
		now:     time.Now,
		logger:  logger,
	}, nil
}

func (b *clientBackupService) Export(ctx context.Context, w io.Writer) (models.BackupArchive, error) {
	archive, err := b.collect(ctx)
	if err != nil {
		return models.BackupArchive{}, err
	}

	if err = b.encMode.NewEncoder(w).Encode(archive); err != nil {
		return models.BackupArchive{}, fmt.Errorf("encode backup archive: %w", err)
	}
	return archive, nil
}

// Upload stores the archive as <user id>/<UTC timestamp>.cbor.
func (b *clientBackupService) Upload(ctx context.Context, uploader adapter.ArchiveUploader) (string, error) {
	var buf bytes.Buffer
	archive, err := b.Export(ctx, &buf)
	if err != nil {
		return "", err
	}

	key := strconv.FormatInt(archive.UserID, 10) + "/" + archive.CreatedAt.UTC().Format("20060102T150405Z") + ".cbor"
	location, err := uploader.Upload(ctx, key, buf.Bytes())
	if err != nil {
		return "", err
	}

	b.logger.Info().Str("location", location).Int("entries", len(archive.Entries)).Msg("backup uploaded")
	return location, nil
}

func (b *clientBackupService) ReadArchive(r io.Reader) (models.BackupArchive, error) {
	var archive models.BackupArchive
	if err := cbor.NewDecoder(r).Decode(&archive); err != nil {
		return models.BackupArchive{}, fmt.Errorf("decode backup archive: %w", err)
	}
	if archive.Version != models.BackupArchiveVersion {
		return models.BackupArchive{}, fmt.Errorf("%w: %d", ErrUnsupportedArchive, archive.Version)
	}
	return archive, nil
}

func (b *clientBackupService) collect(ctx context.Context) (models.BackupArchive, error) {
	session, err := b.auth.Session(ctx)
	if err != nil {
		return models.BackupArchive{}, err
	}
	token, err := b.keys.Token()
	if err != nil {
		return models.BackupArchive{}, err
	}

	entries, err := b.adapter.ListEntries(ctx, token)
	if err != nil {
		return models.BackupArchive{}, mapAdapterError(err)
	}

	archive := models.BackupArchive{
		Version:   models.BackupArchiveVersion,
		UserID:    session.UserID,
		CreatedAt: b.now().UTC(),
		Entries:   make([]models.BackupEnvelope, 0, len(entries)),
	}
	for _, entry := range entries {
		envelope, err := crypto.Decode(entry.EnvelopeFields)
		if err != nil {
			return models.BackupArchive{}, fmt.Errorf("entry %d: %w", entry.ID, err)
		}
		archive.Entries = append(archive.Entries, newBackupEnvelope(entry, envelope))
	}

	return archive, nil
}

func newBackupEnvelope(entry models.DiaryEntry, envelope crypto.Envelope) models.BackupEnvelope {
	out := models.BackupEnvelope{
		ID:          entry.ID,
		IsEncrypted: entry.IsEncrypted,
		Title:       entry.Title,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
	switch e := envelope.(type) {
	case crypto.SealedEnvelope:
		out.Ciphertext = e.Ciphertext
		out.Nonce = e.Nonce
		out.EntrySalt = e.EntrySalt
	case crypto.PublicEnvelope:
		out.Body = e.Body
	}
	return out
}
