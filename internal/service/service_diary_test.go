package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func sealedFields() models.EnvelopeFields {
	return models.EnvelopeFields{
		IsEncrypted: true,
		Title:       "[encrypted]",
		Ciphertext:  "AAAAAAAAAAAAAAAAAAAAAA==",
		Nonce:       "AAAAAAAAAAAAAAAA",
		EntrySalt:   "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	}
}

// newWrappedDiaryService mirrors the composition used by NewServices.
func newWrappedDiaryService(repo *mockDiaryRepository, publisher *mockPublisher) DiaryService {
	svc := NewDiaryService(repo, logger.Nop())
	svc = NewDiaryEventsService(publisher, logger.Nop()).Wrap(svc)
	return NewDiaryValidationService(validators.NewDiaryEntryValidator()).Wrap(svc)
}

// ─────────────────────────────────────────────
// diaryService
// ─────────────────────────────────────────────

func TestDiaryService_List_Success(t *testing.T) {
	want := []models.DiaryEntry{{ID: 2, UserID: 1}, {ID: 1, UserID: 1}}
	repo := &mockDiaryRepository{
		listEntriesFn: func(_ context.Context, userID int64) ([]models.DiaryEntry, error) {
			assert.Equal(t, int64(1), userID)
			return want, nil
		},
	}

	got, err := NewDiaryService(repo, logger.Nop()).List(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiaryService_Get_NotFound(t *testing.T) {
	repo := &mockDiaryRepository{
		getEntryFn: func(_ context.Context, _, _ int64) (models.DiaryEntry, error) {
			return models.DiaryEntry{}, store.ErrEntryNotFound
		},
	}

	_, err := NewDiaryService(repo, logger.Nop()).Get(context.Background(), 1, 99)

	require.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestDiaryService_Create_StoresEnvelopeUnchanged(t *testing.T) {
	entry := models.DiaryEntry{UserID: 1, EnvelopeFields: sealedFields()}
	repo := &mockDiaryRepository{
		createEntryFn: func(_ context.Context, got models.DiaryEntry) (models.DiaryEntry, error) {
			assert.Equal(t, entry, got)
			got.ID = 10
			return got, nil
		},
	}

	created, err := NewDiaryService(repo, logger.Nop()).Create(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
}

func TestDiaryService_Delete_StorageError(t *testing.T) {
	repo := &mockDiaryRepository{
		deleteEntryFn: func(_ context.Context, _, _ int64) error { return errStorage },
	}

	err := NewDiaryService(repo, logger.Nop()).Delete(context.Background(), 1, 1)

	require.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// diaryValidationService
// ─────────────────────────────────────────────

func TestDiaryValidation_Create_RejectsPlaintextInEncryptedEntry(t *testing.T) {
	called := false
	repo := &mockDiaryRepository{
		createEntryFn: func(_ context.Context, e models.DiaryEntry) (models.DiaryEntry, error) {
			called = true
			return e, nil
		},
	}
	fields := sealedFields()
	fields.Title = "Day 1"

	_, err := newWrappedDiaryService(repo, &mockPublisher{}).Create(context.Background(), models.DiaryEntry{UserID: 1, EnvelopeFields: fields})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrMalformedEnvelope)
	assert.False(t, called, "storage must not be reached")
}

func TestDiaryValidation_Create_RejectsEmptyPublicBody(t *testing.T) {
	entry := models.DiaryEntry{UserID: 1, EnvelopeFields: models.EnvelopeFields{Title: "Notice"}}

	_, err := newWrappedDiaryService(&mockDiaryRepository{}, &mockPublisher{}).Create(context.Background(), entry)

	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyPublicBody)
}

func TestDiaryValidation_Update_RequiresID(t *testing.T) {
	entry := models.DiaryEntry{UserID: 1, EnvelopeFields: sealedFields()}

	_, err := newWrappedDiaryService(&mockDiaryRepository{}, &mockPublisher{}).Update(context.Background(), entry)

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDiaryValidation_GetAndDelete_RejectNonPositiveIDs(t *testing.T) {
	svc := newWrappedDiaryService(&mockDiaryRepository{}, &mockPublisher{})

	_, err := svc.Get(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Delete(context.Background(), 0, 1), ErrInvalidDataProvided)
	_, err = svc.List(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// diaryEventsService
// ─────────────────────────────────────────────

func TestDiaryEvents_PublishesAfterSuccessfulWrites(t *testing.T) {
	repo := &mockDiaryRepository{
		createEntryFn: func(_ context.Context, e models.DiaryEntry) (models.DiaryEntry, error) {
			e.ID = 5
			return e, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newWrappedDiaryService(repo, publisher)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.DiaryEntry{UserID: 1, EnvelopeFields: sealedFields()})
	require.NoError(t, err)
	_, err = svc.Update(ctx, models.DiaryEntry{ID: 5, UserID: 1, EnvelopeFields: models.EnvelopeFields{Title: "Notice", Body: "Hi"}})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, 5))

	require.Len(t, publisher.published, 3)
	assert.Equal(t, models.DiaryEntryCreated, publisher.published[0].Kind)
	assert.True(t, publisher.published[0].IsEncrypted)
	assert.Equal(t, int64(5), publisher.published[0].EntryID)
	assert.Equal(t, models.DiaryEntryUpdated, publisher.published[1].Kind)
	assert.False(t, publisher.published[1].IsEncrypted)
	assert.Equal(t, models.DiaryEntryDeleted, publisher.published[2].Kind)
	assert.Equal(t, int64(1), publisher.published[2].UserID)
}

func TestDiaryEvents_FailedWriteIsNotPublished(t *testing.T) {
	repo := &mockDiaryRepository{
		deleteEntryFn: func(_ context.Context, _, _ int64) error { return store.ErrEntryNotFound },
	}
	publisher := &mockPublisher{}

	err := newWrappedDiaryService(repo, publisher).Delete(context.Background(), 1, 5)

	require.ErrorIs(t, err, store.ErrEntryNotFound)
	assert.Empty(t, publisher.published)
}

func TestDiaryEvents_PublishErrorDoesNotFailWrite(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("nats down")}

	_, err := newWrappedDiaryService(&mockDiaryRepository{}, publisher).
		Create(context.Background(), models.DiaryEntry{UserID: 1, EnvelopeFields: sealedFields()})

	require.NoError(t, err)
	assert.Len(t, publisher.published, 1)
}
