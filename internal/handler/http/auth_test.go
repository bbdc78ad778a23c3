// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary-keeper/internal/app"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

func registeredUser(req models.RegisterRequest) models.User {
	salt := "c2FsdA=="
	return models.User{UserID: 1, Name: req.Name, Email: req.Email, EncryptionSalt: &salt}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			assert.Equal(t, "abc", req.DiaryToken)
			return registeredUser(req), nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return stubToken("signed.jwt.token"), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	body := `{"name":"Ann","email":"ann@example.com","password":"password123","diary_token":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var user models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "c2FsdA==", user.EncryptionSalt)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"invalid json", "{invalid json}", nil, http.StatusBadRequest, app.CodeInvalidData},
		{"empty body", "", nil, http.StatusBadRequest, app.CodeInvalidData},
		{"validation", `{"email":"x"}`, service.ErrInvalidDataProvided, http.StatusBadRequest, app.CodeInvalidData},
		{"email taken", `{"email":"ann@example.com"}`, store.ErrEmailAlreadyExists, http.StatusConflict, app.CodeEmailTaken},
		{"storage", `{"email":"ann@example.com"}`, errors.New("db down"), http.StatusInternalServerError, app.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{
				registerUserFn: func(context.Context, models.RegisterRequest) (models.User, error) {
					return models.User{}, tt.serviceErr
				},
			}})
			rec := httptest.NewRecorder()

			h.register(rec, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorBody(t, rec).Code)
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

func TestRegister_TokenCreationFails(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{
		registerUserFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			return registeredUser(req), nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return models.Token{}, service.ErrTokenCreationFailed
		},
	}})
	rec := httptest.NewRecorder()

	h.register(rec, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"email":"ann@example.com"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{
		loginFn: func(_ context.Context, req models.LoginRequest) (models.User, error) {
			return models.User{UserID: 3, Email: req.Email}, nil
		},
		createTokenFn: func(_ context.Context, user models.User) (models.Token, error) {
			assert.Equal(t, int64(3), user.UserID)
			return stubToken("jwt"), nil
		},
	}})
	rec := httptest.NewRecorder()

	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"email":"ann@example.com","password":"password123"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer jwt", rec.Header().Get("Authorization"))
}

func TestLogin_WrongPasswordLooksLikeUnknownEmail(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{
		loginFn: func(context.Context, models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}})
	rec := httptest.NewRecorder()

	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"email":"ann@example.com","password":"nope"}`)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := errorBody(t, rec)
	assert.Equal(t, app.CodeInvalidCredentials, resp.Code)
	assert.Equal(t, app.MsgInvalidEmailPassword, resp.Error)
}

// ─────────────────────────────────────────────
// me without a session in context
// ─────────────────────────────────────────────

func TestMe_NoUserIDInContext(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	rec := httptest.NewRecorder()

	h.me(rec, httptest.NewRequest(http.MethodGet, "/api/user/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
