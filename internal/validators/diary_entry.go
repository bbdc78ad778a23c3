// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// Field names understood by [DiaryEntryValidator].
const (
	FieldUserID   = "user_id"
	FieldEnvelope = "envelope"
	FieldTitle    = "title"
	FieldBody     = "body"
)

// MaxTitleLength is the longest title accepted, in characters.
const MaxTitleLength = 500

// DiaryEntryValidator checks the envelope shape of a diary write. It never
// looks inside ciphertext.
type DiaryEntryValidator struct{}

func NewDiaryEntryValidator() Validator {
	return &DiaryEntryValidator{}
}

func (v *DiaryEntryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.DiaryEntry:
		return v.validateEntry(value, fields...)
	case *models.DiaryEntry:
		return v.validateEntry(*value, fields...)

	case models.EnvelopeFields:
		return v.validateEntry(models.DiaryEntry{EnvelopeFields: value}, withoutUserID(fields)...)
	case *models.EnvelopeFields:
		return v.validateEntry(models.DiaryEntry{EnvelopeFields: *value}, withoutUserID(fields)...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DiaryEntryValidator) validateEntry(entry models.DiaryEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEnvelope, FieldTitle, FieldBody}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if entry.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEnvelope:
			if _, err := crypto.Decode(entry.EnvelopeFields); err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
			}
		case FieldTitle:
			if entry.Title == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(entry.Title) > MaxTitleLength {
				return ErrTitleTooLong
			}
		case FieldBody:
			if !entry.IsEncrypted && entry.Body == "" {
				return ErrEmptyPublicBody
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func withoutUserID(fields []string) []string {
	if len(fields) > 0 {
		return fields
	}
	return []string{FieldEnvelope, FieldTitle, FieldBody}
}
