// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound adapters of the diary client.
//
// [ServerAdapter] talks to the diary server over HTTP/REST
// ([NewHTTPServerAdapter]). [ArchiveUploader] ships encrypted backup
// archives to object storage ([NewS3ArchiveUploader]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401). The
// machine-readable code of the server's JSON error body follows the sentinel
// in the error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the diary server. Implementations
// are responsible for serialisation, the session and diary token headers, and
// mapping transport-level errors to the sentinel values of this package.
type ServerAdapter interface {
	// SetToken stores the session bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the session bearer token, or an empty string.
	Token() string

	// Register creates an account. On success the returned session token is
	// stored via SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error)

	// Login authenticates with email and password. On success the returned
	// session token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error)

	// Me returns the account of the current session.
	Me(ctx context.Context) (models.UserResponse, error)

	// EnrollDiaryToken registers the possession token of an account that has
	// none yet.
	EnrollDiaryToken(ctx context.Context, token crypto.PossessionToken) error

	// Diary operations carry the possession token in the X-DIARY-TOKEN header.
	ListEntries(ctx context.Context, token crypto.PossessionToken) ([]models.DiaryEntry, error)
	GetEntry(ctx context.Context, token crypto.PossessionToken, entryID int64) (models.DiaryEntry, error)
	CreateEntry(ctx context.Context, token crypto.PossessionToken, fields models.EnvelopeFields) (models.DiaryEntry, error)
	UpdateEntry(ctx context.Context, token crypto.PossessionToken, entryID int64, fields models.EnvelopeFields) (models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, token crypto.PossessionToken, entryID int64) error

	UpdateUsername(ctx context.Context, username string) error

	// PublicProfile and PublicEntry need no session.
	PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error)
	PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error)

	Info(ctx context.Context) (models.AppInfo, error)
	Version(ctx context.Context) (string, error)
}

// ArchiveUploader stores a finished backup archive under key and returns
// where it ended up.
type ArchiveUploader interface {
	Upload(ctx context.Context, key string, archive []byte) (location string, err error)
}
