package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/internal/app"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
)

// errorResponse is the status and JSON body written for a matched error.
type errorResponse struct {
	status  int
	message string
	code    string
}

// errorStatusMap is checked in order: the first target matched by errors.Is
// wins.
var errorStatusMap = []struct {
	target error
	resp   errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided, app.CodeInvalidData}},
	{ErrInvalidEntryID, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided, app.CodeInvalidData}},
	{ErrIntegrityCheckFailed, errorResponse{http.StatusBadRequest, ErrIntegrityCheckFailed.Error(), app.CodeInvalidData}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidEmailPassword, app.CodeInvalidCredentials}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid, app.CodeTokenInvalid}},
	{service.ErrDiaryTokenMissing, errorResponse{http.StatusUnauthorized, app.MsgDiaryTokenMissing, app.CodeDiaryTokenMissing}},
	{service.ErrDiaryTokenInvalid, errorResponse{http.StatusUnauthorized, app.MsgDiaryTokenInvalid, app.CodeDiaryTokenInvalid}},
	{ErrNoUserIDInContext, errorResponse{http.StatusUnauthorized, app.MsgNoUserIDProvided, app.CodeTokenInvalid}},

	{service.ErrProfileNotFound, errorResponse{http.StatusNotFound, app.MsgProfileNotFound, app.CodeProfileNotFound}},
	{store.ErrEntryNotFound, errorResponse{http.StatusNotFound, app.MsgDataNotFound, app.CodeNotFound}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, app.MsgDataNotFound, app.CodeNotFound}},

	{store.ErrEmailAlreadyExists, errorResponse{http.StatusConflict, app.MsgEmailAlreadyExists, app.CodeEmailTaken}},
	{store.ErrUsernameTaken, errorResponse{http.StatusConflict, app.MsgUsernameTaken, app.CodeUsernameTaken}},
	{store.ErrDiaryTokenAlreadyEnrolled, errorResponse{http.StatusConflict, app.MsgDiaryTokenAlreadyEnrolled, app.CodeDiaryTokenAlreadyEnrolled}},
}

var internalErrorResponse = errorResponse{http.StatusInternalServerError, app.MsgInternalServerError, app.CodeInternal}

func responseFromError(err error) errorResponse {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.resp
		}
	}
	return internalErrorResponse
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err with the request logger and writes its JSON body.
// Internal errors are logged at error level, the rest at warn.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", resp.status).Msg(msg)
	}

	utils.WriteError(w, resp.status, resp.message, resp.code)
}
