package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// ─────────────────────────────────────────────
// AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerUserFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	meFn           func(ctx context.Context, userID int64) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (models.User, error) {
	return m.meFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// DiaryTokenService
// ─────────────────────────────────────────────

type mockDiaryTokenService struct {
	enrollFn func(ctx context.Context, userID int64, token string) error
	verifyFn func(ctx context.Context, userID int64, presented string) error
}

func (m *mockDiaryTokenService) Enroll(ctx context.Context, userID int64, token string) error {
	return m.enrollFn(ctx, userID, token)
}

func (m *mockDiaryTokenService) Verify(ctx context.Context, userID int64, presented string) error {
	return m.verifyFn(ctx, userID, presented)
}

// ─────────────────────────────────────────────
// DiaryService
// ─────────────────────────────────────────────

type mockDiaryService struct {
	listFn   func(ctx context.Context, userID int64) ([]models.DiaryEntry, error)
	getFn    func(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error)
	createFn func(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	updateFn func(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	deleteFn func(ctx context.Context, userID, entryID int64) error
}

func (m *mockDiaryService) List(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	return m.listFn(ctx, userID)
}

func (m *mockDiaryService) Get(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	return m.getFn(ctx, userID, entryID)
}

func (m *mockDiaryService) Create(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	return m.createFn(ctx, entry)
}

func (m *mockDiaryService) Update(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	return m.updateFn(ctx, entry)
}

func (m *mockDiaryService) Delete(ctx context.Context, userID, entryID int64) error {
	return m.deleteFn(ctx, userID, entryID)
}

// ─────────────────────────────────────────────
// ProfileService
// ─────────────────────────────────────────────

type mockProfileService struct {
	updateUsernameFn func(ctx context.Context, userID int64, username string) error
	publicProfileFn  func(ctx context.Context, username string, page int) (models.PublicProfile, error)
	publicEntryFn    func(ctx context.Context, username string, entryID int64) (models.PublicEntry, error)
}

func (m *mockProfileService) UpdateUsername(ctx context.Context, userID int64, username string) error {
	return m.updateUsernameFn(ctx, userID, username)
}

func (m *mockProfileService) PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error) {
	return m.publicProfileFn(ctx, username, page)
}

func (m *mockProfileService) PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error) {
	return m.publicEntryFn(ctx, username, entryID)
}

// ─────────────────────────────────────────────
// AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetAppInfo(_ context.Context) models.AppInfo {
	return models.AppInfo{Service: "Encrypted Diary Service", Version: m.version}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler fills every service the test leaves nil with an empty fake,
// so an unexpected call panics on the nil fn field.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.DiaryTokenService == nil {
		svcs.DiaryTokenService = &mockDiaryTokenService{}
	}
	if svcs.DiaryService == nil {
		svcs.DiaryService = &mockDiaryService{}
	}
	if svcs.ProfileService == nil {
		svcs.ProfileService = &mockProfileService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, "", logger.Nop())
}

// sessionFor accepts the bearer "valid" as userID.
func sessionFor(userID int64) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, token string) (models.Token, error) {
			if token != "valid" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: userID}, nil
		},
	}
}

// diaryTokenAccepting accepts only the given possession token.
func diaryTokenAccepting(accepted string) *mockDiaryTokenService {
	return &mockDiaryTokenService{
		verifyFn: func(_ context.Context, _ int64, presented string) error {
			switch presented {
			case "":
				return service.ErrDiaryTokenMissing
			case accepted:
				return nil
			default:
				return service.ErrDiaryTokenInvalid
			}
		},
	}
}

func sealedFields() models.EnvelopeFields {
	return models.EnvelopeFields{
		IsEncrypted: true,
		Title:       "[encrypted]",
		Ciphertext:  "AAAAAAAAAAAAAAAAAAAAAA==",
		Nonce:       "AAAAAAAAAAAAAAAA",
		EntrySalt:   "AAAA",
	}
}
