// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] so that
// database errors carry the request's trace fields.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns it with UserID and CreatedAt set.
//
// Error handling:
//   - unique_violation (23505) → [ErrEmailAlreadyExists].
//   - anything else → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByEmail returns [ErrNoUserWasFound] when no account uses email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", "email", email)
}

// FindUserByID returns [ErrNoUserWasFound] when the account does not exist.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", "user_id", userID)
}

// FindUserByUsername returns [ErrNoUserWasFound] when nobody claimed username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", "username", username)
}

func (r *userRepository) findUser(ctx context.Context, funcName, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(column, value)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// SetEncryptionSalt implements [UserRepository]. The update is a single
// statement, so two concurrent first logins agree on one salt.
func (r *userRepository) SetEncryptionSalt(ctx context.Context, userID int64, salt string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSetEncryptionSaltQuery(userID, salt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetEncryptionSalt").Msg("error building query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored string
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&stored)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetEncryptionSalt").Msg("error updating salt")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stored, nil
}

// EnrollDiaryToken implements [UserRepository]. It returns
// [ErrDiaryTokenAlreadyEnrolled] when a hash is already on file.
func (r *userRepository) EnrollDiaryToken(ctx context.Context, userID int64, tokenHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildEnrollDiaryTokenQuery(userID, tokenHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.EnrollDiaryToken").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.EnrollDiaryToken").Msg("error storing diary token hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDiaryTokenAlreadyEnrolled
	}

	return nil
}

// UpdateUsername implements [UserRepository].
func (r *userRepository) UpdateUsername(ctx context.Context, userID int64, username string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUsernameQuery(userID, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUsername").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUsername").Msg("error updating username")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
