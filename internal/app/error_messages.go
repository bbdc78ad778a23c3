// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the diary
// server handlers and by the client when it interprets server responses.
//
// Msg* constants are the human-readable "error" field of a JSON error body.
// Code* constants are the machine-readable "code" field next to it. The
// client matches on codes, never on messages.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned for an unknown email and for a
	// wrong password alike.
	MsgInvalidEmailPassword = "invalid email or password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when the session JWT is
	// missing, expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgDiaryTokenMissing = "Diary token required."
	MsgDiaryTokenInvalid = "Invalid diary token."

	// MsgDiaryTokenAlreadyEnrolled is returned when a second enrollment is
	// attempted for the same account.
	MsgDiaryTokenAlreadyEnrolled = "diary token already enrolled"

	MsgEmailAlreadyExists = "email already exists"
	MsgUsernameTaken      = "username already taken"

	// MsgDataNotFound covers entries that do not exist and entries owned by
	// somebody else. The two cases are indistinguishable on purpose.
	MsgDataNotFound = "data not found"

	MsgProfileNotFound = "profile not found"

	// MsgNoUserIDProvided is returned when a handler requires a user ID from
	// the session but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"
)

const (
	CodeInvalidData               = "INVALID_DATA"
	CodeInvalidCredentials        = "INVALID_CREDENTIALS"
	CodeTokenInvalid              = "TOKEN_INVALID"
	CodeDiaryTokenMissing         = "DIARY_TOKEN_MISSING"
	CodeDiaryTokenInvalid         = "DIARY_TOKEN_INVALID"
	CodeDiaryTokenAlreadyEnrolled = "DIARY_TOKEN_ALREADY_ENROLLED"
	CodeEmailTaken                = "EMAIL_TAKEN"
	CodeUsernameTaken             = "USERNAME_TAKEN"
	CodeNotFound                  = "NOT_FOUND"
	CodeProfileNotFound           = "PROFILE_NOT_FOUND"
	CodeInternal                  = "INTERNAL_ERROR"
)
