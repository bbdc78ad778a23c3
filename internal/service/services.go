package service

import (
	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/events"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/validators"
)

// Services groups the server-side services handed to the HTTP handler.
type Services struct {
	AuthService       AuthService
	DiaryTokenService DiaryTokenService
	DiaryService      DiaryService
	ProfileService    ProfileService
	AppInfoService    AppInfoService
}

// NewServices wires the server services. Diary writes are validated first
// and published after they succeed.
func NewServices(storages *store.Storages, publisher events.Publisher, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, err
	}

	tokenHasher := crypto.NewTokenHasher(cfg.DiaryTokenPepper)
	userValidator := validators.NewUserValidator()

	diary := NewDiaryService(storages.DiaryRepository, logger)
	diary = NewDiaryEventsService(publisher, logger).Wrap(diary)
	diary = NewDiaryValidationService(validators.NewDiaryEntryValidator()).Wrap(diary)

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, userValidator, tokenHasher, crypto.SystemRandom(), cfg, logger),
		DiaryTokenService: NewDiaryTokenService(storages.UserRepository, tokenHasher, logger),
		DiaryService:      diary,
		ProfileService:    NewProfileService(storages.UserRepository, storages.DiaryRepository, userValidator, logger),
		AppInfoService:    appInfo,
	}, nil
}
