package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn    func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn       func(ctx context.Context, userID int64) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	setEncryptionSaltFn  func(ctx context.Context, userID int64, salt string) (string, error)
	enrollDiaryTokenFn   func(ctx context.Context, userID int64, tokenHash string) error
	updateUsernameFn     func(ctx context.Context, userID int64, username string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) SetEncryptionSalt(ctx context.Context, userID int64, salt string) (string, error) {
	if m.setEncryptionSaltFn != nil {
		return m.setEncryptionSaltFn(ctx, userID, salt)
	}
	return salt, nil
}

func (m *mockUserRepository) EnrollDiaryToken(ctx context.Context, userID int64, tokenHash string) error {
	if m.enrollDiaryTokenFn != nil {
		return m.enrollDiaryTokenFn(ctx, userID, tokenHash)
	}
	return nil
}

func (m *mockUserRepository) UpdateUsername(ctx context.Context, userID int64, username string) error {
	if m.updateUsernameFn != nil {
		return m.updateUsernameFn(ctx, userID, username)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.DiaryRepository
// ─────────────────────────────────────────────

type mockDiaryRepository struct {
	listEntriesFn       func(ctx context.Context, userID int64) ([]models.DiaryEntry, error)
	getEntryFn          func(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error)
	createEntryFn       func(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	updateEntryFn       func(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	deleteEntryFn       func(ctx context.Context, userID, entryID int64) error
	listPublicEntriesFn func(ctx context.Context, userID int64, limit, offset uint64) ([]models.PublicEntry, error)
	getPublicEntryFn    func(ctx context.Context, userID, entryID int64) (models.PublicEntry, error)
}

func (m *mockDiaryRepository) ListEntries(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(ctx, userID)
	}
	return []models.DiaryEntry{}, nil
}

func (m *mockDiaryRepository) GetEntry(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	if m.getEntryFn != nil {
		return m.getEntryFn(ctx, userID, entryID)
	}
	return models.DiaryEntry{}, nil
}

func (m *mockDiaryRepository) CreateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if m.createEntryFn != nil {
		return m.createEntryFn(ctx, entry)
	}
	return entry, nil
}

func (m *mockDiaryRepository) UpdateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if m.updateEntryFn != nil {
		return m.updateEntryFn(ctx, entry)
	}
	return entry, nil
}

func (m *mockDiaryRepository) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	if m.deleteEntryFn != nil {
		return m.deleteEntryFn(ctx, userID, entryID)
	}
	return nil
}

func (m *mockDiaryRepository) ListPublicEntries(ctx context.Context, userID int64, limit, offset uint64) ([]models.PublicEntry, error) {
	if m.listPublicEntriesFn != nil {
		return m.listPublicEntriesFn(ctx, userID, limit, offset)
	}
	return []models.PublicEntry{}, nil
}

func (m *mockDiaryRepository) GetPublicEntry(ctx context.Context, userID, entryID int64) (models.PublicEntry, error) {
	if m.getPublicEntryFn != nil {
		return m.getPublicEntryFn(ctx, userID, entryID)
	}
	return models.PublicEntry{}, nil
}

// ─────────────────────────────────────────────
// Mock: events.Publisher
// ─────────────────────────────────────────────

type mockPublisher struct {
	published []models.DiaryEvent
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, event models.DiaryEvent) error {
	m.published = append(m.published, event)
	return m.err
}

func (m *mockPublisher) Close() {}

var errStorage = errors.New("storage error")

func strPtr(s string) *string { return &s }
