package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/migrations"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the driver-specific pieces the repositories need.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	client             bool
}

// Statement builders for the two drivers.
var (
	psql   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

// retryDelays are the pauses before each attempt of a retried call.
var retryDelays = []time.Duration{0, 100 * time.Millisecond, 300 * time.Millisecond}

// Migrate applies the migrations matching the connected driver.
func (db *DB) Migrate() error {
	if db.client {
		return migrations.MigrateClient(db.DB)
	}
	return migrations.Migrate(db.DB)
}

// withRetry runs op until it succeeds, fails with an error the classifier
// does not consider retryable, or runs out of attempts.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt, delay := range retryDelays {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = op()
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt+1).Msg("retryable database error")
	}
	return err
}
