package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
	"github.com/MKhiriev/go-diary-keeper/internal/utils"
	"github.com/MKhiriev/go-diary-keeper/models"
)

func (h *Handler) updateUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, "update username")
		return
	}

	var req models.UsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Join(service.ErrInvalidDataProvided, err), "Invalid JSON was passed")
		return
	}

	if err := h.services.ProfileService.UpdateUsername(r.Context(), userID, req.Username); err != nil {
		writeError(w, r, err, "update username failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
