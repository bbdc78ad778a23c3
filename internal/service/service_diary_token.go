package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

// diaryTokenService keeps only HashForStorage(token) and compares presented
// tokens against it in constant time.
type diaryTokenService struct {
	userRepository store.UserRepository
	hasher         *crypto.TokenHasher
	logger         *logger.Logger
}

func NewDiaryTokenService(userRepository store.UserRepository, hasher *crypto.TokenHasher, logger *logger.Logger) DiaryTokenService {
	return &diaryTokenService{
		userRepository: userRepository,
		hasher:         hasher,
		logger:         logger,
	}
}

// Enroll stores the hash of token for an account that has none yet.
// A second enrollment returns [store.ErrDiaryTokenAlreadyEnrolled].
func (s *diaryTokenService) Enroll(ctx context.Context, userID int64, token string) error {
	if userID <= 0 || token == "" {
		return ErrInvalidDataProvided
	}

	if err := s.userRepository.EnrollDiaryToken(ctx, userID, s.hasher.HashForStorage(token)); err != nil {
		return fmt.Errorf("enroll diary token: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("diary token enrolled")

	return nil
}

// Verify checks presented against the stored hash. An account without an
// enrolled token rejects every presented value.
func (s *diaryTokenService) Verify(ctx context.Context, userID int64, presented string) error {
	if presented == "" {
		return ErrDiaryTokenMissing
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if !user.DiaryTokenEnrolled() || !s.hasher.Verify(presented, *user.DiaryTokenHash) {
		logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("diary token rejected")
		return ErrDiaryTokenInvalid
	}

	return nil
}
