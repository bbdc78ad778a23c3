package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
)

// ClientStorages groups the repositories of the device database.
type ClientStorages struct {
	SessionRepository SessionRepository
	KeyRepository     KeyRepository

	db *DB
}

// NewClientStorages opens the SQLite file named by cfg.DSN, creating it if
// needed, and applies the device migrations.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		KeyRepository:     NewKeyRepository(db, logger),
		db:                db,
	}, nil
}

// Close closes the device database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
