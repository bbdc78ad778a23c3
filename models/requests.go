// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest creates an account. DiaryToken is optional; when present
// its hash is enrolled immediately.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	DiaryToken string `json:"diary_token,omitempty"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DiaryTokenRequest enrolls the possession token of an account
// that does not have one yet.
type DiaryTokenRequest struct {
	DiaryToken string `json:"diary_token"`
}

// UsernameRequest sets the public-profile username.
type UsernameRequest struct {
	Username string `json:"username"`
}
