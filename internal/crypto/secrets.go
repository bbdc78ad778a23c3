// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

const redacted = "[REDACTED]"

// Secret is the account password as typed by the holder.
// It exists only in memory while a key is being derived and never renders
// through fmt, encoding/json or a logger.
type Secret string

// String implements [fmt.Stringer] and always returns a placeholder.
func (s Secret) String() string { return redacted }

// GoString implements [fmt.GoStringer] so that %#v does not leak either.
func (s Secret) GoString() string { return redacted }

// MarshalJSON keeps the secret out of JSON log fields and error payloads.
func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// IsEmpty reports whether no secret was supplied.
func (s Secret) IsEmpty() bool { return len(s) == 0 }

// DerivedKey is the symmetric key produced by [KeyDeriver.DeriveKey].
type DerivedKey []byte

// String implements [fmt.Stringer] and always returns a placeholder.
func (k DerivedKey) String() string { return redacted }

// GoString implements [fmt.GoStringer].
func (k DerivedKey) GoString() string { return redacted }

// MarshalJSON keeps key bytes out of any JSON encoding.
func (k DerivedKey) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// Bytes exposes the raw key for the cipher and the device key store.
func (k DerivedKey) Bytes() []byte { return k }

// Wipe overwrites the key material in place.
func (k DerivedKey) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// PossessionToken proves that the caller currently knows the account secret.
// It travels in the X-DIARY-TOKEN header and is otherwise never rendered.
type PossessionToken string

// String implements [fmt.Stringer] and always returns a placeholder.
func (t PossessionToken) String() string { return redacted }

// GoString implements [fmt.GoStringer].
func (t PossessionToken) GoString() string { return redacted }

// MarshalJSON keeps the token out of any JSON encoding.
func (t PossessionToken) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// Reveal returns the raw token for the request header.
func (t PossessionToken) Reveal() string { return string(t) }
