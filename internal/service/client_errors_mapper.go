// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/app"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	code := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		switch code {
		case app.CodeInvalidCredentials:
			return ErrWrongPassword
		case app.CodeTokenInvalid:
			return ErrTokenIsExpiredOrInvalid
		case app.CodeDiaryTokenMissing:
			return ErrDiaryTokenMissing
		case app.CodeDiaryTokenInvalid:
			return ErrDiaryTokenInvalid
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch code {
		case app.CodeProfileNotFound:
			return ErrProfileNotFound
		case app.CodeNotFound:
			return store.ErrEntryNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch code {
		case app.CodeEmailTaken:
			return store.ErrEmailAlreadyExists
		case app.CodeUsernameTaken:
			return store.ErrUsernameTaken
		case app.CodeDiaryTokenAlreadyEnrolled:
			return store.ErrDiaryTokenAlreadyEnrolled
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
