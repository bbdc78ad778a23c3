package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName         = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrEmptyPassword     = errors.New("password is required")
	ErrInvalidUsername   = errors.New("username must be 3 to 30 letters, digits, '_' or '-'")
	ErrInvalidDiaryToken = errors.New("invalid diary token")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrEmptyTitle        = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrEmptyPublicBody   = errors.New("public entry body is required")
	ErrMalformedEnvelope = errors.New("malformed entry envelope")
)
