package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/internal/app"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "user registration failed")
		return
	}

	h.issueSession(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "user login failed")
		return
	}

	h.issueSession(w, r, user, http.StatusOK)
}

// issueSession puts a fresh JWT in the Authorization header and the account
// in the body.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("session issued")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.NewUserResponse(user), status)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, app.MsgNoUserIDProvided)
		return
	}

	user, err := h.services.AuthService.Me(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "me failed")
		return
	}

	utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

// enrollDiaryToken stores the possession token hash of an account that does
// not have one yet.
func (h *Handler) enrollDiaryToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, app.MsgNoUserIDProvided)
		return
	}

	var req models.DiaryTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	if err := h.services.DiaryTokenService.Enroll(r.Context(), userID, req.DiaryToken); err != nil {
		writeError(w, r, err, "diary token enrollment failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
