package validators

import (
	"context"
	"net/mail"
	"regexp"
	"unicode/utf8"

	"github.com/MKhiriev/go-diary-keeper/models"
)

// Field names understood by [UserValidator].
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldNewPass    = "new_password"
	FieldUsername   = "username"
	FieldDiaryToken = "diary_token"
)

const (
	maxNameLength     = 255
	maxEmailLength    = 255
	minPasswordLength = 8
	maxDiaryTokenLen  = 256
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// UserValidator validates account requests.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.UsernameRequest:
		return validateUsername(value.Username)
	case *models.UsernameRequest:
		return validateUsername(value.Username)

	case models.DiaryTokenRequest:
		return validateDiaryToken(value.DiaryToken)
	case *models.DiaryTokenRequest:
		return validateDiaryToken(value.DiaryToken)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldNewPass}
		if req.DiaryToken != "" {
			fields = append(fields, FieldDiaryToken)
		}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if req.Name == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(req.Name) > maxNameLength {
				return ErrNameTooLong
			}
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldNewPass:
			if utf8.RuneCountInString(req.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldDiaryToken:
			if err := validateDiaryToken(req.DiaryToken); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validateDiaryToken(token string) error {
	if token == "" || len(token) > maxDiaryTokenLen {
		return ErrInvalidDiaryToken
	}
	return nil
}
