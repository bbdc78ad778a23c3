// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

// ErrUserQuit is returned when the holder leaves a prompt without answering.
var ErrUserQuit = errors.New("cancelled by user")

var humanMessages = []struct {
	target  error
	message string
}{
	{service.ErrNotSignedIn, "You are not signed in. Run `diary login` first."},
	{service.ErrWrongPassword, "Invalid email or password."},
	{service.ErrTokenIsExpiredOrInvalid, "Your session has expired. Sign in again."},
	{service.ErrDiaryTokenInvalid, "Wrong diary secret."},
	{service.ErrDiaryTokenMissing, "The diary is locked. Run `diary unlock` first."},
	{keylifecycle.ErrLocked, "The diary is locked. Run `diary unlock` first."},
	{service.ErrProfileNotFound, "No such public profile."},
	{service.ErrInvalidDataProvided, "The server rejected the data."},
	{service.ErrUnsupportedArchive, "This backup was written by a newer client."},
	{store.ErrEmailAlreadyExists, "This email is already registered."},
	{store.ErrUsernameTaken, "This username is already taken."},
	{store.ErrEntryNotFound, "No such entry."},
	{ErrUserQuit, "Cancelled."},
}

// Humanize turns err into one line fit for the terminal.
func Humanize(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range humanMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unavailable."
	}

	return err.Error()
}
