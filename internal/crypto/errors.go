package crypto

import "errors"

var (
	// ErrMalformedInput reports a salt, nonce, key or envelope of the wrong
	// shape. It is a programmer or transport error, never a wrong password.
	ErrMalformedInput = errors.New("malformed cryptographic input")

	// ErrAuthenticationFailure is the only error returned when a payload
	// cannot be opened. Wrong key and tampered data are indistinguishable.
	ErrAuthenticationFailure = errors.New("cannot decrypt")
)
