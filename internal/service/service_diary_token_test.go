package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func newTestDiaryTokenService(repo *mockUserRepository) DiaryTokenService {
	return NewDiaryTokenService(repo, crypto.NewTokenHasher("pepper"), logger.Nop())
}

func enrolledUser(token string) models.User {
	hash := crypto.NewTokenHasher("pepper").HashForStorage(token)
	return models.User{UserID: 1, DiaryTokenHash: &hash}
}

// ─────────────────────────────────────────────
// Enroll
// ─────────────────────────────────────────────

func TestDiaryTokenService_Enroll_StoresHashOnly(t *testing.T) {
	token := crypto.DeriveToken("P1", "1").Reveal()
	repo := &mockUserRepository{
		enrollDiaryTokenFn: func(_ context.Context, userID int64, tokenHash string) error {
			assert.Equal(t, int64(1), userID)
			assert.NotEqual(t, token, tokenHash)
			assert.Len(t, tokenHash, 64)
			return nil
		},
	}

	require.NoError(t, newTestDiaryTokenService(repo).Enroll(context.Background(), 1, token))
}

func TestDiaryTokenService_Enroll_AlreadyEnrolled(t *testing.T) {
	repo := &mockUserRepository{
		enrollDiaryTokenFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrDiaryTokenAlreadyEnrolled
		},
	}

	err := newTestDiaryTokenService(repo).Enroll(context.Background(), 1, "t")

	require.ErrorIs(t, err, store.ErrDiaryTokenAlreadyEnrolled)
}

func TestDiaryTokenService_Enroll_EmptyToken(t *testing.T) {
	err := newTestDiaryTokenService(&mockUserRepository{}).Enroll(context.Background(), 1, "")

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// Verify
// ─────────────────────────────────────────────

func TestDiaryTokenService_Verify(t *testing.T) {
	right := crypto.DeriveToken("P1", "1").Reveal()
	wrong := crypto.DeriveToken("P2", "1").Reveal()

	tests := []struct {
		name      string
		user      models.User
		presented string
		wantErr   error
	}{
		{name: "matching token", user: enrolledUser(right), presented: right},
		{name: "missing header", user: enrolledUser(right), presented: "", wantErr: ErrDiaryTokenMissing},
		{name: "token of another secret", user: enrolledUser(right), presented: wrong, wantErr: ErrDiaryTokenInvalid},
		{name: "nothing enrolled", user: models.User{UserID: 1}, presented: right, wantErr: ErrDiaryTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) { return tt.user, nil },
			}

			err := newTestDiaryTokenService(repo).Verify(context.Background(), 1, tt.presented)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDiaryTokenService_Verify_StorageError(t *testing.T) {
	repo := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) { return models.User{}, errStorage },
	}

	err := newTestDiaryTokenService(repo).Verify(context.Background(), 1, "t")

	require.ErrorIs(t, err, errStorage)
}
