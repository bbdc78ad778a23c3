// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// UndecryptableTitle is shown in place of an entry the held key cannot open.
const UndecryptableTitle = "[Unable to decrypt]"

type clientDiaryService struct {
	auth      ClientAuthService
	adapter   adapter.ServerAdapter
	keys      *keylifecycle.Manager
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientDiaryService(
	auth ClientAuthService,
	serverAdapter adapter.ServerAdapter,
	keys *keylifecycle.Manager,
	logger *logger.Logger,
) ClientDiaryService {
	return &clientDiaryService{
		auth:      auth,
		adapter:   serverAdapter,
		keys:      keys,
		validator: validators.NewDiaryEntryValidator(),
		logger:    logger,
	}
}

func (d *clientDiaryService) Unlock(ctx context.Context, secret crypto.Secret, remember bool) error {
	session, err := d.auth.Session(ctx)
	if err != nil {
		return err
	}

	salt, err := base64.StdEncoding.DecodeString(session.EncryptionSalt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSalt, err)
	}

	if err = d.keys.Unlock(ctx, secret, salt, session.UserID); err != nil {
		return err
	}

	if err = d.checkToken(ctx); err != nil {
		if lockErr := d.keys.Lock(ctx); lockErr != nil {
			d.logger.Err(lockErr).Msg("locking after failed unlock")
		}
		return err
	}

	if remember {
		return d.keys.Remember(ctx)
	}
	return nil
}

// checkToken enrolls the possession token on the first unlock and otherwise
// lets the server confirm it, so a wrong secret is caught before any entry
// is written under the wrong key.
func (d *clientDiaryService) checkToken(ctx context.Context) error {
	token, err := d.keys.Token()
	if err != nil {
		return err
	}

	me, err := d.adapter.Me(ctx)
	if err != nil {
		return mapAdapterError(err)
	}

	if !me.DiaryTokenEnrolled {
		if err = d.adapter.EnrollDiaryToken(ctx, token); err != nil {
			return mapAdapterError(err)
		}
		d.logger.Info().Int64("user_id", me.ID).Msg("diary token enrolled on first unlock")
		return nil
	}

	if _, err = d.adapter.ListEntries(ctx, token); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (d *clientDiaryService) EnsureUnlocked(ctx context.Context, prompt SecretPrompt) error {
	switch d.keys.State() {
	case keylifecycle.Unlocked, keylifecycle.Persisted:
		return nil
	}

	session, err := d.auth.Session(ctx)
	if err != nil {
		return err
	}

	err = d.keys.Restore(ctx, session.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, keylifecycle.ErrNothingPersisted) {
		return err
	}

	secret, err := prompt(ctx)
	if err != nil {
		return err
	}
	return d.Unlock(ctx, secret, false)
}

func (d *clientDiaryService) Lock(ctx context.Context) error {
	if err := d.keys.Lock(ctx); err != nil {
		return err
	}

	// a locked manager holds no user id; clear what may be on disk anyway
	session, err := d.auth.Session(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return nil
	}
	if err != nil {
		return err
	}
	return d.keys.Forget(ctx, session.UserID)
}

// List opens every entry in parallel. An entry that cannot be opened is
// returned with [UndecryptableTitle] and never fails the list.
func (d *clientDiaryService) List(ctx context.Context) ([]DiaryView, error) {
	token, err := d.keys.Token()
	if err != nil {
		return nil, err
	}

	entries, err := d.adapter.ListEntries(ctx, token)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	envelopes := make([]crypto.Envelope, len(entries))
	for i, entry := range entries {
		envelope, decodeErr := crypto.Decode(entry.EnvelopeFields)
		if decodeErr != nil {
			d.logger.Warn().Err(decodeErr).Int64("entry_id", entry.ID).Msg("malformed envelope from server")
			continue
		}
		envelopes[i] = envelope
	}

	results, err := d.keys.OpenAll(envelopes)
	if err != nil {
		return nil, err
	}

	views := make([]DiaryView, len(entries))
	for i, entry := range entries {
		views[i] = newDiaryView(entry, results[i])
	}
	return views, nil
}

func (d *clientDiaryService) Show(ctx context.Context, entryID int64) (DiaryView, error) {
	token, err := d.keys.Token()
	if err != nil {
		return DiaryView{}, err
	}

	entry, err := d.adapter.GetEntry(ctx, token, entryID)
	if err != nil {
		return DiaryView{}, mapAdapterError(err)
	}

	envelope, err := crypto.Decode(entry.EnvelopeFields)
	if err != nil {
		return newDiaryView(entry, keylifecycle.OpenResult{Err: err}), nil
	}

	results, err := d.keys.OpenAll([]crypto.Envelope{envelope})
	if err != nil {
		return DiaryView{}, err
	}
	return newDiaryView(entry, results[0]), nil
}

func (d *clientDiaryService) Write(ctx context.Context, title, body string, public bool) (DiaryView, error) {
	token, fields, err := d.seal(ctx, title, body, public)
	if err != nil {
		return DiaryView{}, err
	}

	entry, err := d.adapter.CreateEntry(ctx, token, fields)
	if err != nil {
		return DiaryView{}, mapAdapterError(err)
	}

	return newDiaryView(entry, keylifecycle.OpenResult{Title: title, Body: body, Public: public}), nil
}

// Edit replaces title and body. Switching public changes whether the entry
// is stored sealed or in plaintext.
func (d *clientDiaryService) Edit(ctx context.Context, entryID int64, title, body string, public bool) (DiaryView, error) {
	token, fields, err := d.seal(ctx, title, body, public)
	if err != nil {
		return DiaryView{}, err
	}

	entry, err := d.adapter.UpdateEntry(ctx, token, entryID, fields)
	if err != nil {
		return DiaryView{}, mapAdapterError(err)
	}

	return newDiaryView(entry, keylifecycle.OpenResult{Title: title, Body: body, Public: public}), nil
}

func (d *clientDiaryService) Delete(ctx context.Context, entryID int64) error {
	token, err := d.keys.Token()
	if err != nil {
		return err
	}

	return mapAdapterError(d.adapter.DeleteEntry(ctx, token, entryID))
}

// seal checks the plaintext and turns it into wire fields.
func (d *clientDiaryService) seal(ctx context.Context, title, body string, public bool) (crypto.PossessionToken, models.EnvelopeFields, error) {
	token, err := d.keys.Token()
	if err != nil {
		return "", models.EnvelopeFields{}, err
	}

	plain := models.EnvelopeFields{IsEncrypted: !public, Title: title, Body: body}
	if err = d.validator.Validate(ctx, plain, validators.FieldTitle, validators.FieldBody); err != nil {
		return "", models.EnvelopeFields{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if public {
		return token, crypto.Encode(crypto.PublicEnvelope{Title: title, Body: body}), nil
	}

	sealed, err := d.keys.Seal(title, body)
	if err != nil {
		return "", models.EnvelopeFields{}, err
	}
	return token, crypto.Encode(sealed), nil
}

func newDiaryView(entry models.DiaryEntry, result keylifecycle.OpenResult) DiaryView {
	view := DiaryView{
		ID:          entry.ID,
		IsEncrypted: entry.IsEncrypted,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
	if result.Err != nil {
		view.Title = UndecryptableTitle
		return view
	}

	view.Title = result.Title
	view.Body = result.Body
	view.Readable = true
	return view
}
