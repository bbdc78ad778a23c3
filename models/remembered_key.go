package models

import "time"

// RememberedKey is the derived key material a holder opted to keep on the
// device. It lives only in the client database, never on the server.
type RememberedKey struct {
	UserID          int64
	DerivedKey      []byte
	PossessionToken string
	SavedAt         time.Time
}
