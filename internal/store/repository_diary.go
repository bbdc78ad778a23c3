package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// diaryRepository is the PostgreSQL-backed implementation of [DiaryRepository].
// It stores envelopes exactly as received and never looks inside them.
type diaryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDiaryRepository constructs a [DiaryRepository] backed by db.
func NewDiaryRepository(db *DB, logger *logger.Logger) DiaryRepository {
	logger.Debug().Msg("creating diary repository")
	return &diaryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *diaryRepository) ListEntries(ctx context.Context, userID int64) ([]models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.ListEntries").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entries []models.DiaryEntry
	err = r.db.withRetry(ctx, func() error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		entries = make([]models.DiaryEntry, 0)
		for rows.Next() {
			entry, scanErr := scanEntry(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			entries = append(entries, entry)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.ListEntries").Msg("error selecting entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}

func (r *diaryRepository) GetEntry(ctx context.Context, userID, entryID int64) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEntryQuery(userID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.GetEntry").Msg("error building query")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntry(ctx, "*diaryRepository.GetEntry", query, args)
}

func (r *diaryRepository) CreateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateEntryQuery(entry)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.CreateEntry").Msg("error building query")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntry(ctx, "*diaryRepository.CreateEntry", query, args)
}

// UpdateEntry replaces the whole envelope of an entry, so an entry can move
// between the encrypted and public shapes.
func (r *diaryRepository) UpdateEntry(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(entry)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.UpdateEntry").Msg("error building query")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntry(ctx, "*diaryRepository.UpdateEntry", query, args)
}

func (r *diaryRepository) queryEntry(ctx context.Context, funcName, query string, args []any) (models.DiaryEntry, error) {
	log := logger.FromContext(ctx)

	var entry models.DiaryEntry
	err := r.db.withRetry(ctx, func() error {
		var scanErr error
		entry, scanErr = scanEntry(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.DiaryEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing entry query")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

func (r *diaryRepository) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(userID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.DeleteEntry").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.DeleteEntry").Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *diaryRepository) ListPublicEntries(ctx context.Context, userID int64, limit, offset uint64) ([]models.PublicEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPublicEntriesQuery(userID, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.ListPublicEntries").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entries []models.PublicEntry
	err = r.db.withRetry(ctx, func() error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		entries = make([]models.PublicEntry, 0, limit)
		for rows.Next() {
			entry, scanErr := scanPublicEntry(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			entries = append(entries, entry)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.ListPublicEntries").Msg("error selecting public entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}

func (r *diaryRepository) GetPublicEntry(ctx context.Context, userID, entryID int64) (models.PublicEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetPublicEntryQuery(userID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.GetPublicEntry").Msg("error building query")
		return models.PublicEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.PublicEntry
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		entry, scanErr = scanPublicEntry(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.PublicEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*diaryRepository.GetPublicEntry").Msg("error selecting public entry")
		return models.PublicEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}
