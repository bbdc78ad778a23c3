package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type profileService struct {
	userRepository  store.UserRepository
	diaryRepository store.DiaryRepository
	validator       validators.Validator
	logger          *logger.Logger
}

func NewProfileService(
	userRepository store.UserRepository,
	diaryRepository store.DiaryRepository,
	validator validators.Validator,
	logger *logger.Logger,
) ProfileService {
	return &profileService{
		userRepository:  userRepository,
		diaryRepository: diaryRepository,
		validator:       validator,
		logger:          logger,
	}
}

// UpdateUsername sets the public-profile name. Setting the name the user
// already has succeeds.
func (p *profileService) UpdateUsername(ctx context.Context, userID int64, username string) error {
	if err := p.validator.Validate(ctx, models.UsernameRequest{Username: username}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := p.userRepository.UpdateUsername(ctx, userID, username); err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	return nil
}

// maxPublicPageOffset is the largest OFFSET Postgres accepts.
const maxPublicPageOffset = math.MaxInt64

// PublicProfile returns one page of the public entries of username, newest
// first. Pages start at 1; anything lower is treated as the first page.
func (p *profileService) PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error) {
	if page < 1 {
		page = 1
	}

	user, err := p.findByUsername(ctx, username)
	if err != nil {
		return models.PublicProfile{}, err
	}

	if uint64(page-1) > maxPublicPageOffset/models.PublicPageSize {
		return models.PublicProfile{Username: username, Name: user.Name, Entries: []models.PublicEntry{}, Page: page}, nil
	}

	// one extra row tells whether a next page exists
	offset := uint64(page-1) * models.PublicPageSize
	entries, err := p.diaryRepository.ListPublicEntries(ctx, user.UserID, models.PublicPageSize+1, offset)
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("list public entries: %w", err)
	}

	hasMore := len(entries) > models.PublicPageSize
	if hasMore {
		entries = entries[:models.PublicPageSize]
	}
	if entries == nil {
		entries = []models.PublicEntry{}
	}

	return models.PublicProfile{
		Username: username,
		Name:     user.Name,
		Entries:  entries,
		Page:     page,
		HasMore:  hasMore,
	}, nil
}

// PublicEntry returns one public entry. Encrypted entries and entries of
// other users are reported as [store.ErrEntryNotFound].
func (p *profileService) PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error) {
	user, err := p.findByUsername(ctx, username)
	if err != nil {
		return models.PublicEntry{}, err
	}

	entry, err := p.diaryRepository.GetPublicEntry(ctx, user.UserID, entryID)
	if err != nil {
		return models.PublicEntry{}, fmt.Errorf("get public entry: %w", err)
	}
	return entry, nil
}

func (p *profileService) findByUsername(ctx context.Context, username string) (models.User, error) {
	if username == "" {
		return models.User{}, ErrProfileNotFound
	}

	user, err := p.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrProfileNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}
