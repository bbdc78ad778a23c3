// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/internal/events"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// diaryEventsService publishes a [models.DiaryEvent] after every successful
// write of the wrapped service. A failed publish is logged and never fails
// the write.
type diaryEventsService struct {
	inner     DiaryService
	publisher events.Publisher
	logger    *logger.Logger
}

type diaryEventsWrapper struct {
	publisher events.Publisher
	logger    *logger.Logger
}

func NewDiaryEventsService(publisher events.Publisher, logger *logger.Logger) DiaryServiceWrapper {
	return &diaryEventsWrapper{publisher: publisher, logger: logger}
}

func (w *diaryEventsWrapper) Wrap(inner DiaryService) DiaryService {
	return &diaryEventsService{inner: inner, publisher: w.publisher, logger: w.logger}
}

func (e *diaryEventsService) List(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	return e.inner.List(ctx, userID)
}

func (e *diaryEventsService) Get(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	return e.inner.Get(ctx, userID, entryID)
}

func (e *diaryEventsService) Create(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	created, err := e.inner.Create(ctx, entry)
	if err != nil {
		return created, err
	}
	e.publish(ctx, models.DiaryEvent{
		Kind:        models.DiaryEntryCreated,
		UserID:      created.UserID,
		EntryID:     created.ID,
		IsEncrypted: created.IsEncrypted,
	})
	return created, nil
}

func (e *diaryEventsService) Update(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	updated, err := e.inner.Update(ctx, entry)
	if err != nil {
		return updated, err
	}
	e.publish(ctx, models.DiaryEvent{
		Kind:        models.DiaryEntryUpdated,
		UserID:      updated.UserID,
		EntryID:     updated.ID,
		IsEncrypted: updated.IsEncrypted,
	})
	return updated, nil
}

func (e *diaryEventsService) Delete(ctx context.Context, userID, entryID int64) error {
	if err := e.inner.Delete(ctx, userID, entryID); err != nil {
		return err
	}
	e.publish(ctx, models.DiaryEvent{
		Kind:    models.DiaryEntryDeleted,
		UserID:  userID,
		EntryID: entryID,
	})
	return nil
}

func (e *diaryEventsService) publish(ctx context.Context, event models.DiaryEvent) {
	if err := e.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("kind", string(event.Kind)).
			Int64("entry_id", event.EntryID).
			Msg("publishing diary event failed")
	}
}
