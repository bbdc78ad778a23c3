package store

import (
	"context"

	"github.com/MKhiriev/go-diary-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository keeps the signed-in session on the device.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.ClientSession) error
	// LoadSession returns ErrLocalSessionNotFound when signed out.
	LoadSession(ctx context.Context) (models.ClientSession, error)
	DeleteSession(ctx context.Context) error
}

// KeyRepository keeps remembered diary keys on the device. It satisfies
// keylifecycle.DurableKeyStore.
type KeyRepository interface {
	SaveKey(ctx context.Context, key models.RememberedKey) error
	LoadKey(ctx context.Context, userID int64) (models.RememberedKey, bool, error)
	DeleteKey(ctx context.Context, userID int64) error
}
