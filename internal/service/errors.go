package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrDiaryTokenMissing = errors.New("diary token required")
	ErrDiaryTokenInvalid = errors.New("invalid diary token")

	ErrProfileNotFound = errors.New("profile not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Client-side errors.
var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrRegisterOnServer   = errors.New("registration on server failed")
	ErrLoginOnServer      = errors.New("login on server failed")
	ErrMalformedSalt      = errors.New("server returned a malformed encryption salt")
	ErrUnsupportedArchive = errors.New("unsupported backup archive version")
)
