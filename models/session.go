package models

import "time"

// ClientSession is the signed-in state kept on the holder's device.
type ClientSession struct {
	UserID         int64
	Email          string
	Name           string
	EncryptionSalt string
	AccessToken    string
	SavedAt        time.Time
}
