package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-diary-keeper/internal/utils"
)

// publicProfile serves GET /@{username}?page=N. A missing or non-numeric
// page means the first one.
func (h *Handler) publicProfile(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	profile, err := h.services.ProfileService.PublicProfile(r.Context(), chi.URLParam(r, "username"), page)
	if err != nil {
		writeError(w, r, err, "public profile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) publicEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "public entry")
		return
	}

	entry, err := h.services.ProfileService.PublicEntry(r.Context(), chi.URLParam(r, "username"), entryID)
	if err != nil {
		writeError(w, r, err, "public entry")
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}
