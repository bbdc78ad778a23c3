package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Password carries the plaintext password on the way in only.
	// It is replaced by PasswordHash before anything is persisted.
	Password string `json:"-"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// Username is the optional public-profile identifier.
	Username *string `json:"username"`

	// EncryptionSalt is the base64 per-user key derivation salt.
	// It is not secret. Nil only for accounts created before it existed.
	EncryptionSalt *string `json:"encryption_salt"`

	// DiaryTokenHash is the one-way hash of the diary possession token.
	DiaryTokenHash *string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DiaryTokenEnrolled reports whether a possession token hash is on file.
func (u User) DiaryTokenEnrolled() bool {
	return u.DiaryTokenHash != nil && *u.DiaryTokenHash != ""
}
