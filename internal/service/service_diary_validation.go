package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// diaryValidationService rejects malformed envelopes before they reach the
// wrapped service.
type diaryValidationService struct {
	inner     DiaryService
	validator validators.Validator
}

type diaryValidationWrapper struct {
	validator validators.Validator
}

func NewDiaryValidationService(validator validators.Validator) DiaryServiceWrapper {
	return &diaryValidationWrapper{validator: validator}
}

func (w *diaryValidationWrapper) Wrap(inner DiaryService) DiaryService {
	return &diaryValidationService{inner: inner, validator: w.validator}
}

func (v *diaryValidationService) List(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.List(ctx, userID)
}

func (v *diaryValidationService) Get(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	if userID <= 0 || entryID <= 0 {
		return models.DiaryEntry{}, ErrInvalidDataProvided
	}
	return v.inner.Get(ctx, userID, entryID)
}

func (v *diaryValidationService) Create(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if err := v.validator.Validate(ctx, entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, entry)
}

func (v *diaryValidationService) Update(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if entry.ID <= 0 {
		return models.DiaryEntry{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, entry)
}

func (v *diaryValidationService) Delete(ctx context.Context, userID, entryID int64) error {
	if userID <= 0 || entryID <= 0 {
		return ErrInvalidDataProvided
	}
	return v.inner.Delete(ctx, userID, entryID)
}
