// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// authService is the concrete implementation of AuthService.
//
// Passwords are stored as bcrypt hashes. The server also hands out the
// per-user key derivation salt; it never sees the diary secret or the key.
type authService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	tokenHasher    *crypto.TokenHasher

	// random supplies new encryption salts.
	random crypto.SecureRandom

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the account repository and
// the session settings in cfg.
func NewAuthService(
	userRepository store.UserRepository,
	validator validators.Validator,
	tokenHasher *crypto.TokenHasher,
	random crypto.SecureRandom,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		tokenHasher:    tokenHasher,
		random:         random,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         logger,
	}
}

// RegisterUser creates an account with a fresh encryption salt. When the
// request carries a diary token its hash is stored by the same insert.
//
// Returns [ErrInvalidDataProvided] (wrapped with the validation error) or
// [store.ErrEmailAlreadyExists].
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid registration request")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword(passwordDigest(req.Password), a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	salt, err := a.newEncryptionSalt()
	if err != nil {
		return models.User{}, err
	}

	newUser := models.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(passwordHash),
		EncryptionSalt: &salt,
	}
	if req.DiaryToken != "" {
		tokenHash := a.tokenHasher.HashForStorage(req.DiaryToken)
		newUser.DiaryTokenHash = &tokenHash
	}

	user, err := a.userRepository.CreateUser(ctx, newUser)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login checks the password. Unknown emails and wrong passwords both return
// [ErrWrongPassword].
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(req.Password)); err != nil {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return a.ensureEncryptionSalt(ctx, user)
}

func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	return a.ensureEncryptionSalt(ctx, user)
}

// ensureEncryptionSalt gives accounts created before salts existed one.
func (a *authService) ensureEncryptionSalt(ctx context.Context, user models.User) (models.User, error) {
	if user.EncryptionSalt != nil && *user.EncryptionSalt != "" {
		return user, nil
	}

	salt, err := a.newEncryptionSalt()
	if err != nil {
		return models.User{}, err
	}

	stored, err := a.userRepository.SetEncryptionSalt(ctx, user.UserID, salt)
	if err != nil {
		return models.User{}, fmt.Errorf("store encryption salt: %w", err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Msg("generated missing encryption salt")

	user.EncryptionSalt = &stored
	return user, nil
}

func (a *authService) newEncryptionSalt() (string, error) {
	salt, err := crypto.GenerateSalt(a.random)
	if err != nil {
		return "", fmt.Errorf("generate encryption salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// CreateToken issues a signed session JWT for user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a session JWT. Every failure is reported as
// [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// passwordDigest is what bcrypt sees instead of the raw password. bcrypt
// rejects input over 72 bytes and the password is also the diary secret,
// so long passphrases have to work.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
