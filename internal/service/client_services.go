package service

import (
	"github.com/MKhiriev/go-diary-keeper/internal/adapter"
	"github.com/MKhiriev/go-diary-keeper/internal/keylifecycle"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	DiaryService   ClientDiaryService
	ProfileService ClientProfileService
	BackupService  ClientBackupService
}

// NewClientServices wires the client services around one key manager.
func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, keys *keylifecycle.Manager, logger *logger.Logger) (*ClientServices, error) {
	authSvc := NewClientAuthService(localStore.SessionRepository, serverAdapter, keys, logger)

	backupSvc, err := NewClientBackupService(authSvc, serverAdapter, keys, logger)
	if err != nil {
		return nil, err
	}

	return &ClientServices{
		AuthService:    authSvc,
		DiaryService:   NewClientDiaryService(authSvc, serverAdapter, keys, logger),
		ProfileService: NewClientProfileService(authSvc, serverAdapter),
		BackupService:  backupSvc,
	}, nil
}
