package service

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

const serviceName = "Encrypted Diary Service"

var (
	serviceFeatures = []string{
		"End-to-end encryption",
		"Client-side key derivation",
		"AES-256-GCM encryption",
		"Zero-knowledge architecture",
		"Public diary sharing",
	}
	serviceSecurity = []string{
		"Diary content encrypted with user password",
		"Admins cannot read diary content",
		"Each diary has unique salt and IV",
		"Password recovery = data loss (by design)",
		"Public diaries stored in plaintext (user choice)",
	}
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetAppInfo returns a fresh copy every call so callers may modify it.
func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return models.AppInfo{
		Service:  serviceName,
		Version:  s.appVersion,
		Features: append([]string(nil), serviceFeatures...),
		Security: append([]string(nil), serviceSecurity...),
	}
}
