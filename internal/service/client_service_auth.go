package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

type clientAuthService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	keys     *keylifecycle.Manager
	now      func() time.Time
	logger   *logger.Logger
}

func NewClientAuthService(
	sessions store.SessionRepository,
	serverAdapter adapter.ServerAdapter,
	keys *keylifecycle.Manager,
	logger *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		adapter:  serverAdapter,
		keys:     keys,
		now:      time.Now,
		logger:   logger,
	}
}

// Register creates the account. The possession token is not sent here: it
// depends on the user id, which the server assigns, so it is enrolled on the
// first unlock instead.
func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.ClientSession, error) {
	req.DiaryToken = ""

	user, err := a.adapter.Register(ctx, req)
	if err != nil {
		return models.ClientSession{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.saveSession(ctx, user)
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.ClientSession, error) {
	user, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.ClientSession{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.saveSession(ctx, user)
}

func (a *clientAuthService) saveSession(ctx context.Context, user models.UserResponse) (models.ClientSession, error) {
	session := models.ClientSession{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		EncryptionSalt: user.EncryptionSalt,
		AccessToken:    a.adapter.Token(),
		SavedAt:        a.now(),
	}

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		return models.ClientSession{}, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info().Int64("user_id", session.UserID).Msg("signed in")

	return session, nil
}

func (a *clientAuthService) Session(ctx context.Context) (models.ClientSession, error) {
	session, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.ClientSession{}, ErrNotSignedIn
	}
	if err != nil {
		return models.ClientSession{}, fmt.Errorf("load session: %w", err)
	}

	a.adapter.SetToken(session.AccessToken)
	return session, nil
}

// Logout succeeds when already signed out.
func (a *clientAuthService) Logout(ctx context.Context) error {
	session, err := a.Session(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = a.keys.Forget(ctx, session.UserID); err != nil {
		return fmt.Errorf("forget remembered key: %w", err)
	}
	if err = a.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	a.adapter.SetToken("")

	return nil
}
