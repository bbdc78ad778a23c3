package store

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary-keeper/models"
)

var (
	userColumns = []string{
		"user_id",
		"name",
		"email",
		"password_hash",
		"username",
		"encryption_salt",
		"diary_token_hash",
		"created_at",
	}

	diaryColumns = []string{
		"id",
		"user_id",
		"is_encrypted",
		"title",
		"body",
		"nonce",
		"entry_salt",
		"created_at",
		"updated_at",
	}

	publicEntryColumns = []string{"id", "title", "body", "created_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ───────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(models.User{}.TableName()).
		Columns("name", "email", "password_hash", "encryption_salt", "diary_token_hash").
		Values(user.Name, user.Email, user.PasswordHash, user.EncryptionSalt, user.DiaryTokenHash).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserQuery(column string, value any) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

// buildSetEncryptionSaltQuery keeps an existing salt and returns whichever
// salt ends up stored.
func buildSetEncryptionSaltQuery(userID int64, salt string) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("encryption_salt", sq.Expr("COALESCE(encryption_salt, ?)", salt)).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING encryption_salt").
		ToSql()
}

func buildEnrollDiaryTokenQuery(userID int64, tokenHash string) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("diary_token_hash", tokenHash).
		Where(sq.Eq{"user_id": userID, "diary_token_hash": nil}).
		ToSql()
}

func buildUpdateUsernameQuery(userID int64, username string) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("username", username).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── diaries ─────────────────────────────────────────────────────────────────

func buildListEntriesQuery(userID int64) (string, []any, error) {
	return psql.Select(diaryColumns...).
		From(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildGetEntryQuery(userID, entryID int64) (string, []any, error) {
	return psql.Select(diaryColumns...).
		From(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
}

func buildCreateEntryQuery(entry models.DiaryEntry) (string, []any, error) {
	body, nonce, entrySalt := entryStorageValues(entry.EnvelopeFields)

	return psql.Insert(models.DiaryEntry{}.TableName()).
		Columns("user_id", "is_encrypted", "title", "body", "nonce", "entry_salt").
		Values(entry.UserID, entry.IsEncrypted, entry.Title, body, nonce, entrySalt).
		Suffix(returning(diaryColumns)).
		ToSql()
}

func buildUpdateEntryQuery(entry models.DiaryEntry) (string, []any, error) {
	body, nonce, entrySalt := entryStorageValues(entry.EnvelopeFields)

	return psql.Update(models.DiaryEntry{}.TableName()).
		Set("is_encrypted", entry.IsEncrypted).
		Set("title", entry.Title).
		Set("body", body).
		Set("nonce", nonce).
		Set("entry_salt", entrySalt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": entry.ID, "user_id": entry.UserID}).
		Suffix(returning(diaryColumns)).
		ToSql()
}

func buildDeleteEntryQuery(userID, entryID int64) (string, []any, error) {
	return psql.Delete(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
}

func buildListPublicEntriesQuery(userID int64, limit, offset uint64) (string, []any, error) {
	return psql.Select(publicEntryColumns...).
		From(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID, "is_encrypted": false}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
}

func buildGetPublicEntryQuery(userID, entryID int64) (string, []any, error) {
	return psql.Select(publicEntryColumns...).
		From(models.DiaryEntry{}.TableName()).
		Where(sq.Eq{"id": entryID, "user_id": userID, "is_encrypted": false}).
		ToSql()
}

// entryStorageValues maps envelope fields onto the diaries columns. The body
// column holds the ciphertext of an encrypted entry.
func entryStorageValues(fields models.EnvelopeFields) (string, sql.NullString, sql.NullString) {
	if !fields.IsEncrypted {
		return fields.Body, sql.NullString{}, sql.NullString{}
	}
	return fields.Ciphertext,
		sql.NullString{String: fields.Nonce, Valid: true},
		sql.NullString{String: fields.EntrySalt, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.EncryptionSalt,
		&user.DiaryTokenHash,
		&user.CreatedAt,
	)
	return user, err
}

func scanEntry(row rowScanner) (models.DiaryEntry, error) {
	var (
		entry     models.DiaryEntry
		body      string
		nonce     sql.NullString
		entrySalt sql.NullString
	)
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.IsEncrypted,
		&entry.Title,
		&body,
		&nonce,
		&entrySalt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	if entry.IsEncrypted {
		entry.Ciphertext = body
		entry.Nonce = nonce.String
		entry.EntrySalt = entrySalt.String
	} else {
		entry.Body = body
	}
	return entry, nil
}

func scanPublicEntry(row rowScanner) (models.PublicEntry, error) {
	var entry models.PublicEntry
	err := row.Scan(&entry.ID, &entry.Title, &entry.Body, &entry.CreatedAt)
	return entry, err
}
