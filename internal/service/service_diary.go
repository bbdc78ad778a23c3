package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// diaryService stores envelopes exactly as received. It never decrypts and
// never inspects ciphertext.
type diaryService struct {
	diaryRepository store.DiaryRepository
	logger          *logger.Logger
}

func NewDiaryService(diaryRepository store.DiaryRepository, logger *logger.Logger) DiaryService {
	return &diaryService{
		diaryRepository: diaryRepository,
		logger:          logger,
	}
}

func (d *diaryService) List(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	entries, err := d.diaryRepository.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}

func (d *diaryService) Get(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	entry, err := d.diaryRepository.GetEntry(ctx, userID, entryID)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("get diary entry: %w", err)
	}
	return entry, nil
}

func (d *diaryService) Create(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	created, err := d.diaryRepository.CreateEntry(ctx, entry)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", entry.UserID).Msg("diary entry creation failed")
		return models.DiaryEntry{}, fmt.Errorf("create diary entry: %w", err)
	}
	return created, nil
}

// Update replaces the envelope of an existing entry, switching it between
// encrypted and public when the new envelope says so.
func (d *diaryService) Update(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	updated, err := d.diaryRepository.UpdateEntry(ctx, entry)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("update diary entry: %w", err)
	}
	return updated, nil
}

func (d *diaryService) Delete(ctx context.Context, userID, entryID int64) error {
	if err := d.diaryRepository.DeleteEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("delete diary entry: %w", err)
	}
	return nil
}
