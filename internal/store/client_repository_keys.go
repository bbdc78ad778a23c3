package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// keyRepository is the SQLite implementation of [KeyRepository]. Rows only
// exist for holders who asked to be remembered on this device.
type keyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewKeyRepository constructs a [KeyRepository] backed by db.
func NewKeyRepository(db *DB, logger *logger.Logger) KeyRepository {
	return &keyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *keyRepository) SaveKey(ctx context.Context, key models.RememberedKey) error {
	query, args, err := buildSaveKeyQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*keyRepository.SaveKey").Int64("user_id", key.UserID).Msg("error saving key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *keyRepository) LoadKey(ctx context.Context, userID int64) (models.RememberedKey, bool, error) {
	query, args, err := buildLoadKeyQuery(userID)
	if err != nil {
		return models.RememberedKey{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var key models.RememberedKey
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&key.UserID,
		&key.DerivedKey,
		&key.PossessionToken,
		&key.SavedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RememberedKey{}, false, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*keyRepository.LoadKey").Int64("user_id", userID).Msg("error loading key")
		return models.RememberedKey{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return key, true, nil
}

// DeleteKey succeeds when nothing was stored.
func (r *keyRepository) DeleteKey(ctx context.Context, userID int64) error {
	query, args, err := buildDeleteKeyQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*keyRepository.DeleteKey").Int64("user_id", userID).Msg("error deleting key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
