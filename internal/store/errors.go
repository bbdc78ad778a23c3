package store

import "errors"

// Sentinel errors returned by repository methods. Callers match them with
// [errors.Is].
var (
	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameTaken is returned when another account already uses the
	// requested public username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDiaryTokenAlreadyEnrolled is returned when enrolling a diary token
	// for an account that already has one.
	ErrDiaryTokenAlreadyEnrolled = errors.New("diary token already enrolled")

	// ErrEntryNotFound is returned when an entry does not exist or belongs to
	// another user. The two cases are deliberately the same error.
	ErrEntryNotFound = errors.New("diary entry was not found")

	// ErrLocalSessionNotFound is returned when the device has no saved session.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
