package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-diary-keeper/internal/app"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func serve(t *testing.T, h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

var diaryHeaders = map[string]string{
	"Authorization":         "Bearer valid",
	crypto.DiaryTokenHeader: "good-token",
}

// ─────────────────────────────────────────────
// Public routes
// ─────────────────────────────────────────────

func TestRoutes_Version(t *testing.T) {
	h := newTestHandler(t, &service.Services{AppInfoService: &mockAppInfoService{version: "1.2.3"}})

	rec := serve(t, h, http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestRoutes_Info(t *testing.T) {
	h := newTestHandler(t, &service.Services{AppInfoService: &mockAppInfoService{version: "1.2.3"}})

	rec := serve(t, h, http.MethodGet, "/api/info", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var info models.AppInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Encrypted Diary Service", info.Service)
	assert.Equal(t, "1.2.3", info.Version)
}

func TestRoutes_EveryResponseCarriesSecurityHeaders(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	for _, target := range []string{"/api/version", "/api/diary", "/nowhere"} {
		rec := serve(t, h, http.MethodGet, target, "", nil)

		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'", target)
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'", target)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), target)
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"), target)
		assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"), target)
		assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"), target)
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader), target)
	}
}

func TestRoutes_PublicProfile(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPage int
	}{
		{"default page", "/@ann", 1},
		{"explicit page", "/@ann?page=3", 3},
		{"garbage page", "/@ann?page=abc", 1},
		{"negative page", "/@ann?page=-2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUsername string
			var gotPage int
			h := newTestHandler(t, &service.Services{ProfileService: &mockProfileService{
				publicProfileFn: func(_ context.Context, username string, page int) (models.PublicProfile, error) {
					gotUsername, gotPage = username, page
					return models.PublicProfile{Username: username, Page: page, Entries: []models.PublicEntry{}}, nil
				},
			}})

			rec := serve(t, h, http.MethodGet, tt.target, "", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "ann", gotUsername)
			assert.Equal(t, tt.wantPage, gotPage)
		})
	}
}

func TestRoutes_PublicProfileNotFound(t *testing.T) {
	h := newTestHandler(t, &service.Services{ProfileService: &mockProfileService{
		publicProfileFn: func(context.Context, string, int) (models.PublicProfile, error) {
			return models.PublicProfile{}, service.ErrProfileNotFound
		},
	}})

	rec := serve(t, h, http.MethodGet, "/@ghost", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.CodeProfileNotFound, errorBody(t, rec).Code)
}

func TestRoutes_PublicEntry(t *testing.T) {
	h := newTestHandler(t, &service.Services{ProfileService: &mockProfileService{
		publicEntryFn: func(_ context.Context, username string, entryID int64) (models.PublicEntry, error) {
			if username != "ann" || entryID != 5 {
				return models.PublicEntry{}, store.ErrEntryNotFound
			}
			return models.PublicEntry{ID: 5, Title: "Notice", Body: "Hello world"}, nil
		},
	}})

	rec := serve(t, h, http.MethodGet, "/@ann/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello world")

	rec = serve(t, h, http.MethodGet, "/@ann/6", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.CodeNotFound, errorBody(t, rec).Code)

	rec = serve(t, h, http.MethodGet, "/@ann/x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// Session and possession token
// ─────────────────────────────────────────────

func TestRoutes_DiaryRequiresSession(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: sessionFor(1)})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"bad token", "Bearer expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			rec := serve(t, h, http.MethodGet, "/api/diary", "", headers)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, app.CodeTokenInvalid, errorBody(t, rec).Code)
		})
	}
}

func TestRoutes_DiaryTokenCheckedBeforeStorage(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantCode string
		wantMsg  string
	}{
		{"missing", "", app.CodeDiaryTokenMissing, app.MsgDiaryTokenMissing},
		{"wrong", "stolen-session-only", app.CodeDiaryTokenInvalid, app.MsgDiaryTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				AuthService:       sessionFor(1),
				DiaryTokenService: diaryTokenAccepting("good-token"),
				// nil fn fields: any storage access panics and fails the test
				DiaryService: &mockDiaryService{},
			})
			headers := map[string]string{"Authorization": "Bearer valid"}
			if tt.token != "" {
				headers[crypto.DiaryTokenHeader] = tt.token
			}

			for _, method := range []string{http.MethodGet, http.MethodDelete} {
				target := "/api/diary"
				if method == http.MethodDelete {
					target = "/api/diary/1"
				}
				rec := serve(t, h, method, target, "", headers)

				require.Equal(t, http.StatusUnauthorized, rec.Code, method)
				resp := errorBody(t, rec)
				assert.Equal(t, tt.wantCode, resp.Code)
				assert.Equal(t, tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestRoutes_MeNeedsNoDiaryToken(t *testing.T) {
	auth := sessionFor(7)
	auth.meFn = func(_ context.Context, userID int64) (models.User, error) {
		salt := "c2FsdA=="
		return models.User{UserID: userID, Email: "ann@example.com", EncryptionSalt: &salt}, nil
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(t, h, http.MethodGet, "/api/user/me", "", map[string]string{"Authorization": "Bearer valid"})

	require.Equal(t, http.StatusOK, rec.Code)
	var user models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "c2FsdA==", user.EncryptionSalt)
	assert.False(t, user.DiaryTokenEnrolled)
}

func TestRoutes_UnknownMethodIsNotFound(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := serve(t, h, http.MethodDelete, "/api/version", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// Diary CRUD through the full chain
// ─────────────────────────────────────────────

func TestRoutes_DiaryList(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			listFn: func(_ context.Context, userID int64) ([]models.DiaryEntry, error) {
				assert.Equal(t, int64(7), userID)
				return []models.DiaryEntry{{ID: 2, UserID: 7, EnvelopeFields: sealedFields()}}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/diary", "", diaryHeaders)

	require.Equal(t, http.StatusOK, rec.Code)
	var list models.DiaryEntryList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Entries, 1)
	assert.Equal(t, 1, list.Length)
	assert.True(t, list.Entries[0].IsEncrypted)
	assert.NotContains(t, rec.Body.String(), "user_id")
}

func TestRoutes_DiaryListEmptyIsArray(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			listFn: func(context.Context, int64) ([]models.DiaryEntry, error) { return nil, nil },
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/diary", "", diaryHeaders)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[],"length":0}`, rec.Body.String())
}

func TestRoutes_DiaryCreate(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			createFn: func(_ context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
				assert.Equal(t, int64(7), entry.UserID, "owner comes from the session")
				entry.ID = 11
				return entry, nil
			},
		},
	})
	body, err := json.Marshal(sealedFields())
	require.NoError(t, err)

	rec := serve(t, h, http.MethodPost, "/api/diary", string(body), diaryHeaders)

	require.Equal(t, http.StatusCreated, rec.Code)
	var entry models.DiaryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, int64(11), entry.ID)
}

func TestRoutes_DiaryCreateInvalid(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			createFn: func(context.Context, models.DiaryEntry) (models.DiaryEntry, error) {
				return models.DiaryEntry{}, service.ErrInvalidDataProvided
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/diary", `{"is_encrypted":false,"title":""}`, diaryHeaders)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.CodeInvalidData, errorBody(t, rec).Code)

	rec = serve(t, h, http.MethodPost, "/api/diary", `{not json`, diaryHeaders)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_DiaryGetNotOwned(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			getFn: func(_ context.Context, userID, entryID int64) (models.DiaryEntry, error) {
				return models.DiaryEntry{}, store.ErrEntryNotFound
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/diary/99", "", diaryHeaders)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.CodeNotFound, errorBody(t, rec).Code)
}

func TestRoutes_DiaryUpdate(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			updateFn: func(_ context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
				assert.Equal(t, int64(4), entry.ID)
				assert.Equal(t, int64(7), entry.UserID)
				assert.Equal(t, "Notice", entry.Title)
				return entry, nil
			},
		},
	})

	rec := serve(t, h, http.MethodPut, "/api/diary/4", `{"is_encrypted":false,"title":"Notice","body":"Hello"}`, diaryHeaders)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_DiaryDelete(t *testing.T) {
	var deleted int64
	h := newTestHandler(t, &service.Services{
		AuthService:       sessionFor(7),
		DiaryTokenService: diaryTokenAccepting("good-token"),
		DiaryService: &mockDiaryService{
			deleteFn: func(_ context.Context, userID, entryID int64) error {
				deleted = entryID
				return nil
			},
		},
	})

	rec := serve(t, h, http.MethodDelete, "/api/diary/4", "", diaryHeaders)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), deleted)

	rec = serve(t, h, http.MethodDelete, "/api/diary/0", "", diaryHeaders)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// Settings and enrollment
// ─────────────────────────────────────────────

func TestRoutes_UpdateUsernameTaken(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: sessionFor(7),
		ProfileService: &mockProfileService{
			updateUsernameFn: func(_ context.Context, userID int64, username string) error {
				assert.Equal(t, "ann", username)
				return store.ErrUsernameTaken
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/settings/username", `{"username":"ann"}`, map[string]string{"Authorization": "Bearer valid"})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, app.CodeUsernameTaken, errorBody(t, rec).Code)
}

func TestRoutes_EnrollDiaryToken(t *testing.T) {
	tests := []struct {
		name       string
		enrollErr  error
		wantStatus int
		wantCode   string
	}{
		{"first enrollment", nil, http.StatusNoContent, ""},
		{"already enrolled", store.ErrDiaryTokenAlreadyEnrolled, http.StatusConflict, app.CodeDiaryTokenAlreadyEnrolled},
		{"empty token", service.ErrInvalidDataProvided, http.StatusBadRequest, app.CodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				AuthService: sessionFor(7),
				DiaryTokenService: &mockDiaryTokenService{
					enrollFn: func(_ context.Context, userID int64, token string) error {
						assert.Equal(t, int64(7), userID)
						return tt.enrollErr
					},
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/user/diary-token", `{"diary_token":"abc"}`, map[string]string{"Authorization": "Bearer valid"})

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorBody(t, rec).Code)
			}
		})
	}
}
