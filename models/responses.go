package models

// UserResponse is returned by register, login and me.
//
// EncryptionSalt is always populated: accounts created before salts existed
// get one generated on first access.
type UserResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Username           *string `json:"username"`
	EncryptionSalt     string  `json:"encryption_salt"`
	DiaryTokenEnrolled bool    `json:"diary_token_enrolled"`
}

// NewUserResponse projects the public part of u.
func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                 u.UserID,
		Name:               u.Name,
		Email:              u.Email,
		Username:           u.Username,
		DiaryTokenEnrolled: u.DiaryTokenEnrolled(),
	}
	if u.EncryptionSalt != nil {
		resp.EncryptionSalt = *u.EncryptionSalt
	}
	return resp
}

// ErrorResponse is the JSON body of a rejected request that carries
// a machine-readable code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppInfo describes the running service.
type AppInfo struct {
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
	Security []string `json:"security"`
}
