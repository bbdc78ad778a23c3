package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-diary-keeper/models"
)

const (
	sessionsTable       = "sessions"
	rememberedKeysTable = "remembered_keys"

	// singleSessionID is the only row of the sessions table.
	singleSessionID = 1
)

var (
	sessionColumns = []string{"user_id", "email", "name", "encryption_salt", "access_token", "saved_at"}
	keyColumns     = []string{"user_id", "derived_key", "possession_token", "saved_at"}
)

func buildSaveSessionQuery(session models.ClientSession) (string, []any, error) {
	return sqlite.Replace(sessionsTable).
		Columns(append([]string{"id"}, sessionColumns...)...).
		Values(singleSessionID, session.UserID, session.Email, session.Name,
			session.EncryptionSalt, session.AccessToken, session.SavedAt).
		ToSql()
}

func buildLoadSessionQuery() (string, []any, error) {
	return sqlite.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": singleSessionID}).
		ToSql()
}

func buildDeleteSessionQuery() (string, []any, error) {
	return sqlite.Delete(sessionsTable).ToSql()
}

func buildSaveKeyQuery(key models.RememberedKey) (string, []any, error) {
	return sqlite.Replace(rememberedKeysTable).
		Columns(keyColumns...).
		Values(key.UserID, key.DerivedKey, key.PossessionToken, key.SavedAt).
		ToSql()
}

func buildLoadKeyQuery(userID int64) (string, []any, error) {
	return sqlite.Select(keyColumns...).
		From(rememberedKeysTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteKeyQuery(userID int64) (string, []any, error) {
	return sqlite.Delete(rememberedKeysTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}
