package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &DB{DB: db, logger: logger.Nop(), errorClassificator: NewPostgresErrorClassifier()}, mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: db.logger}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func strPtr(s string) *string { return &s }

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	user := models.User{
		Name:           "Ann",
		Email:          "ann@example.com",
		PasswordHash:   "bcrypt",
		EncryptionSalt: strPtr("c2FsdA=="),
	}

	mock.ExpectQuery(`INSERT INTO users \(name,email,password_hash,encryption_salt,diary_token_hash\)`).
		WithArgs("Ann", "ann@example.com", "bcrypt", "c2FsdA==", nil).
		WillReturnRows(userRows().AddRow(1, "Ann", "ann@example.com", "bcrypt", nil, "c2FsdA==", nil, now))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 || created.Email != "ann@example.com" {
		t.Fatalf("unexpected user: %+v", created)
	}
	if created.EncryptionSalt == nil || *created.EncryptionSalt != "c2FsdA==" {
		t.Fatalf("salt not scanned: %v", created.EncryptionSalt)
	}
	if created.Username != nil || created.DiaryTokenHash != nil {
		t.Fatalf("nullable columns should stay nil: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "ann@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_RetriesTransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(userRows().AddRow(2, "Bob", "bob@example.com", "h", nil, nil, nil, time.Now()))

	created, err := repo.CreateUser(context.Background(), models.User{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 2 {
		t.Fatalf("expected user 2, got %d", created.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmail(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		wantID  int64
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
					WithArgs("ann@example.com").
					WillReturnRows(userRows().AddRow(5, "Ann", "ann@example.com", "h", "ann", "salt", "tokenhash", time.Now()))
			},
			wantID: 5,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM users").
					WithArgs("ann@example.com").
					WillReturnRows(userRows())
			},
			wantErr: ErrNoUserWasFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM users").
					WillReturnError(pgError(pgerrcode.UndefinedTable))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)
			tt.setup(mock)

			user, err := repo.FindUserByEmail(context.Background(), "ann@example.com")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.UserID != tt.wantID || !user.DiaryTokenEnrolled() {
				t.Fatalf("unexpected user: %+v", user)
			}
		})
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestSetEncryptionSalt_KeepsExisting(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`UPDATE users SET encryption_salt = COALESCE\(encryption_salt, \$1\) WHERE user_id = \$2 RETURNING encryption_salt`).
		WithArgs("new", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"encryption_salt"}).AddRow("old"))

	salt, err := repo.SetEncryptionSalt(context.Background(), 3, "new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if salt != "old" {
		t.Fatalf("expected existing salt to win, got %q", salt)
	}
}

func TestEnrollDiaryToken(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		err     error
		wantErr error
	}{
		{name: "enrolled", result: sqlmock.NewResult(0, 1)},
		{name: "already enrolled", result: sqlmock.NewResult(0, 0), wantErr: ErrDiaryTokenAlreadyEnrolled},
		{name: "db error", err: pgError(pgerrcode.CheckViolation), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			exp := mock.ExpectExec(`UPDATE users SET diary_token_hash = \$1 WHERE diary_token_hash IS NULL AND user_id = \$2`).
				WithArgs("hash", int64(4))
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.EnrollDiaryToken(context.Background(), 4, "hash")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateUsername(t *testing.T) {
	t.Run("taken", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users SET username").
			WithArgs("ann", int64(1)).
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		if err := repo.UpdateUsername(context.Background(), 1, "ann"); !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users SET username").
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.UpdateUsername(context.Background(), 1, "ann"); !errors.Is(err, ErrNoUserWasFound) {
			t.Fatalf("expected ErrNoUserWasFound, got %v", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users SET username").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateUsername(context.Background(), 1, "ann"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
