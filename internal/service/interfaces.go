package service

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// AuthService registers accounts, checks passwords and issues sessions.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	// Me returns the account of userID, generating a missing salt.
	Me(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DiaryTokenService enrolls and verifies the possession token of an account.
type DiaryTokenService interface {
	Enroll(ctx context.Context, userID int64, token string) error
	// Verify returns nil, ErrDiaryTokenMissing or ErrDiaryTokenInvalid.
	Verify(ctx context.Context, userID int64, presented string) error
}

// DiaryService stores diary envelopes for their owner.
type DiaryService interface {
	List(ctx context.Context, userID int64) ([]models.DiaryEntry, error)
	Get(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error)
	Create(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	Update(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error)
	Delete(ctx context.Context, userID, entryID int64) error
}

// DiaryServiceWrapper decorates a DiaryService with behavior such as
// validation or event publishing.
type DiaryServiceWrapper interface {
	Wrap(DiaryService) DiaryService
}

// ProfileService manages usernames and serves public profiles.
type ProfileService interface {
	UpdateUsername(ctx context.Context, userID int64, username string) error
	PublicProfile(ctx context.Context, username string, page int) (models.PublicProfile, error)
	PublicEntry(ctx context.Context, username string, entryID int64) (models.PublicEntry, error)
}

// AppInfoService describes the running service.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
